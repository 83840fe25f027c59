package breakeven

import (
	"fmt"
	"strings"

	"github.com/nbetharia/itax/internal/output"
)

// TableFormatter formats break-even results for the console
type TableFormatter struct{}

// Format generates a formatted summary of a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("REGIME BREAK-EVEN ANALYSIS") + "\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	if result.ProfileName != "" {
		sb.WriteString(fmt.Sprintf("Profile:              %s\n", result.ProfileName))
	}
	sb.WriteString(fmt.Sprintf("Financial Year:       %s\n", result.Year))
	sb.WriteString(fmt.Sprintf("Gross Income:         %s\n", output.FormatCurrency(result.GrossIncome)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("New Regime Tax:       %s\n", output.FormatCurrency(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax:       %s\n", output.FormatCurrency(result.OldRegimeTax)))
	sb.WriteString(fmt.Sprintf("Current Deductions:   %s\n", output.FormatCurrency(result.CurrentDeductions)))
	sb.WriteString(output.TotalStyle.Render(fmt.Sprintf("Break-even Deductions: %s", output.FormatCurrency(result.BreakEvenDeductions))) + "\n")
	if result.ConvergenceInfo != "" {
		sb.WriteString(output.MutedStyle.Render(result.ConvergenceInfo) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case result.OldRegimeAhead():
		sb.WriteString(output.RecommendStyle.Render("Current deductions already make the Old regime cheaper") + "\n")
	case result.AdditionalNeeded.IsPositive():
		sb.WriteString(fmt.Sprintf("Claim %s more in deductions for the Old regime to match the New regime\n",
			output.FormatCurrency(result.AdditionalNeeded)))
	default:
		sb.WriteString("Both regimes cost the same at current deductions\n")
	}

	return sb.String()
}
