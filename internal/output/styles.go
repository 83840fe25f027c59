package output

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#1E88E5")
	ColorSuccess = lipgloss.Color("#43A047")
	ColorDanger  = lipgloss.Color("#E53935")
	ColorMuted   = lipgloss.Color("#9E9E9E")
)

// Base styles used by the console formatters
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TotalStyle = lipgloss.NewStyle().
			Bold(true)

	RecommendStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)
)
