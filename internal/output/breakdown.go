package output

import (
	"fmt"
	"strings"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

const lineWidth = 64

// BreakdownFormatter renders a single-regime computation for the console
type BreakdownFormatter struct{}

// Format renders the detailed tax computation of one result
func (bf *BreakdownFormatter) Format(result *domain.TaxComputationResult) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("DETAILED TAX COMPUTATION") + "\n")
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Financial Year: %s   Category: %s   Regime: %s\n",
		result.Year, result.Category, strings.ToUpper(string(result.Regime))))
	sb.WriteString("\n")

	sb.WriteString(row("Gross Total Income", result.GrossIncome))
	for _, d := range result.Deductions {
		sb.WriteString(row("Less: "+d.Name, d.Amount))
	}
	if len(result.Deductions) == 0 && result.Regime == domain.RegimeNew {
		sb.WriteString(MutedStyle.Render("  (no deductions under the new regime)") + "\n")
	}
	sb.WriteString(row("Total Deductions", result.TotalDeductions))
	sb.WriteString(TotalStyle.Render(line("Taxable Income", result.TaxableIncome)) + "\n")
	sb.WriteString("\n")

	if len(result.Slabs) > 0 {
		sb.WriteString(SectionStyle.Render("SLAB-WISE TAX") + "\n")
		for _, s := range result.Slabs {
			sb.WriteString(fmt.Sprintf("  %-30s %6s %12s %12s\n",
				SlabRange(s),
				FormatPercentage(s.RatePercent),
				FormatCurrency(s.TaxableAmount),
				FormatCurrency(s.Tax)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(row("Tax on Total Income", result.BaseTax))
	if result.Rebate.GreaterThan(decimal.Zero) {
		sb.WriteString(row("Less: Section 87A Rebate", result.Rebate))
	}
	sb.WriteString(row("Tax after Rebate", result.TaxAfterRebate))
	if result.Surcharge.GreaterThan(decimal.Zero) {
		sb.WriteString(row(fmt.Sprintf("Add: Surcharge (%s)", FormatPercentage(result.SurchargeRatePercent)), result.Surcharge))
	}
	sb.WriteString(row(fmt.Sprintf("Add: Cess (%s)", FormatPercentage(result.CessRatePercent)), result.Cess))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(TotalStyle.Render(line("Total Tax Liability", result.FinalTax)) + "\n")
	sb.WriteString(fmt.Sprintf("Effective Rate: %s\n", FormatPercentage(result.EffectiveRatePercent())))

	return sb.String()
}

// SlabRange describes a slab contribution as a rupee range
func SlabRange(s domain.SlabContribution) string {
	if s.Upper == nil {
		return "Above " + FormatCurrency(s.Lower)
	}
	return FormatCurrency(s.Lower) + " - " + FormatCurrency(*s.Upper)
}

func row(label string, amount decimal.Decimal) string {
	return line(label, amount) + "\n"
}

func line(label string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-44s %19s", label, FormatCurrency(amount))
}
