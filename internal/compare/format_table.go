package compare

import (
	"fmt"
	"strings"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/nbetharia/itax/internal/output"
	"github.com/shopspring/decimal"
)

const tableWidth = 72

// TableFormatter formats regime comparisons as a console table
type TableFormatter struct{}

// Format generates a side-by-side old/new table for one profile
func (tf *TableFormatter) Format(c *domain.RegimeComparison) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("TAX REGIME COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	if c.ProfileName != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", c.ProfileName))
	}
	sb.WriteString(fmt.Sprintf("Financial Year: %s\n\n", c.Year))

	labelWidth := 30
	numWidth := 20

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Old Regime", numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	rows := []struct {
		label string
		pick  func(r *domain.TaxComputationResult) decimal.Decimal
	}{
		{"Gross Income", func(r *domain.TaxComputationResult) decimal.Decimal { return r.GrossIncome }},
		{"Total Deductions", func(r *domain.TaxComputationResult) decimal.Decimal { return r.TotalDeductions }},
		{"Taxable Income", func(r *domain.TaxComputationResult) decimal.Decimal { return r.TaxableIncome }},
		{"Tax on Total Income", func(r *domain.TaxComputationResult) decimal.Decimal { return r.BaseTax }},
		{"Section 87A Rebate", func(r *domain.TaxComputationResult) decimal.Decimal { return r.Rebate }},
		{"Surcharge", func(r *domain.TaxComputationResult) decimal.Decimal { return r.Surcharge }},
		{"Cess", func(r *domain.TaxComputationResult) decimal.Decimal { return r.Cess }},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, row.label,
			numWidth, output.FormatCurrency(row.pick(c.Old)),
			numWidth, output.FormatCurrency(row.pick(c.New))))
	}

	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
	sb.WriteString(output.TotalStyle.Render(fmt.Sprintf("%-*s %*s %*s",
		labelWidth, "Total Tax Liability",
		numWidth, output.FormatCurrency(c.Old.FinalTax),
		numWidth, output.FormatCurrency(c.New.FinalTax))) + "\n")
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective Rate",
		numWidth, output.FormatPercentage(c.Old.EffectiveRatePercent()),
		numWidth, output.FormatPercentage(c.New.EffectiveRatePercent())))
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n\n")

	sb.WriteString(output.RecommendStyle.Render(fmt.Sprintf("Recommended: %s Regime (saves %s)",
		regimeLabel(c.Recommended), output.FormatCurrency(c.Savings))) + "\n")

	if recs := GenerateRecommendations(c); len(recs) > 0 {
		sb.WriteString("\n" + output.SectionStyle.Render("RECOMMENDATIONS") + "\n")
		for _, rec := range recs {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// FormatBatch generates one line per profile plus the batch totals
func (tf *TableFormatter) FormatBatch(summary *BatchSummary) string {
	var sb strings.Builder

	nameWidth := 24
	numWidth := 14

	sb.WriteString(output.TitleStyle.Render("BATCH REGIME COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", tableWidth+6) + "\n")
	sb.WriteString(fmt.Sprintf("Financial Year: %s   Profiles: %d\n\n", summary.Year, len(summary.Comparisons)))

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %6s\n",
		nameWidth, "Profile",
		numWidth, "Old Tax",
		numWidth, "New Tax",
		numWidth, "Savings",
		"Pick"))
	sb.WriteString(strings.Repeat("-", tableWidth+6) + "\n")

	for i, c := range summary.Comparisons {
		name := c.ProfileName
		if name == "" {
			name = fmt.Sprintf("profile-%d", i+1)
		}
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %6s\n",
			nameWidth, tf.truncate(name, nameWidth),
			numWidth, output.FormatCompact(c.Old.FinalTax),
			numWidth, output.FormatCompact(c.New.FinalTax),
			numWidth, tf.deltaSymbol(c.Savings)+output.FormatCompact(c.Savings),
			regimeLabel(c.Recommended)))
	}

	sb.WriteString(strings.Repeat("=", tableWidth+6) + "\n")
	sb.WriteString(fmt.Sprintf("Old regime recommended: %d   New regime recommended: %d\n",
		summary.OldRecommended, summary.NewRecommended))
	sb.WriteString(output.TotalStyle.Render("Total savings from choosing well: "+output.FormatCurrency(summary.TotalSavings)) + "\n")

	return sb.String()
}

// deltaSymbol prefixes non-zero savings with a plus sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
