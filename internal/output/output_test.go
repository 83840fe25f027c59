package output

import (
	"strings"
	"testing"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"99999", "₹99,999"},
		{"100000", "₹1,00,000"},
		{"1234567", "₹12,34,567"},
		{"25047984", "₹2,50,47,984"},
		{"1234567890", "₹1,23,45,67,890"},
		{"2400.5", "₹2,401"},
		{"-150000", "-₹1,50,000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "₹12.35L", FormatCompact(decimal.NewFromInt(1234567)))
	assert.Equal(t, "₹1.50Cr", FormatCompact(decimal.NewFromInt(15000000)))
	assert.Equal(t, "₹99,999", FormatCompact(decimal.NewFromInt(99999)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "30.0%", FormatPercentage(decimal.NewFromInt(30)))
	assert.Equal(t, "5.2%", FormatPercentage(decimal.NewFromFloat(5.2)))
}

func TestSlabRange(t *testing.T) {
	upper := decimal.NewFromInt(800000)
	bounded := domain.SlabContribution{Lower: decimal.NewFromInt(400000), Upper: &upper}
	unbounded := domain.SlabContribution{Lower: decimal.NewFromInt(2400000)}

	assert.Equal(t, "₹4,00,000 - ₹8,00,000", SlabRange(bounded))
	assert.Equal(t, "Above ₹24,00,000", SlabRange(unbounded))
}

func sampleResult() *domain.TaxComputationResult {
	upper := decimal.NewFromInt(250000)
	return &domain.TaxComputationResult{
		Year:            "2025-26",
		Category:        domain.CategoryIndividual,
		Regime:          domain.RegimeOld,
		GrossIncome:     decimal.NewFromInt(700000),
		Deductions:      []domain.DeductionItem{{Name: "Section 80C", Amount: decimal.NewFromInt(150000)}},
		TotalDeductions: decimal.NewFromInt(150000),
		TaxableIncome:   decimal.NewFromInt(550000),
		Slabs: []domain.SlabContribution{
			{Lower: decimal.Zero, Upper: &upper, RatePercent: decimal.Zero, TaxableAmount: decimal.NewFromInt(250000), Tax: decimal.Zero},
			{Lower: decimal.NewFromInt(250000), RatePercent: decimal.NewFromInt(5), TaxableAmount: decimal.NewFromInt(300000), Tax: decimal.NewFromInt(15000)},
		},
		BaseTax:         decimal.NewFromInt(15000),
		TaxAfterRebate:  decimal.NewFromInt(15000),
		CessRatePercent: decimal.NewFromInt(4),
		Cess:            decimal.NewFromInt(600),
		FinalTax:        decimal.NewFromInt(15600),
	}
}

func TestBreakdownFormatter_Format(t *testing.T) {
	out := (&BreakdownFormatter{}).Format(sampleResult())

	for _, want := range []string{
		"DETAILED TAX COMPUTATION",
		"Financial Year: 2025-26",
		"Regime: OLD",
		"Gross Total Income",
		"Less: Section 80C",
		"₹1,50,000",
		"Taxable Income",
		"SLAB-WISE TAX",
		"Above ₹2,50,000",
		"Add: Cess (4.0%)",
		"Total Tax Liability",
		"₹15,600",
		"Effective Rate: 2.2%",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Section 87A")
	assert.NotContains(t, out, "Surcharge")
}

func TestBreakdownFormatter_NewRegimeNote(t *testing.T) {
	result := sampleResult()
	result.Regime = domain.RegimeNew
	result.Deductions = nil
	result.Rebate = decimal.NewFromInt(15000)
	result.TaxAfterRebate = decimal.Zero

	out := (&BreakdownFormatter{}).Format(result)
	assert.Contains(t, out, "no deductions under the new regime")
	assert.Contains(t, out, "Less: Section 87A Rebate")
	assert.Equal(t, 1, strings.Count(out, "Total Tax Liability"))
}
