package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForAge(t *testing.T) {
	tests := []struct {
		age  int
		want Category
	}{
		{0, CategoryIndividual},
		{59, CategoryIndividual},
		{60, CategorySenior},
		{79, CategorySenior},
		{80, CategorySuperSenior},
		{95, CategorySuperSenior},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.age), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryForAge(tt.age))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CategorySenior.Valid())
	assert.False(t, Category("minor").Valid())
	assert.True(t, RegimeOld.Valid())
	assert.False(t, Regime("flat").Valid())
	assert.True(t, RolePension.Valid())
	assert.False(t, Role("retired").Valid())

	assert.True(t, RegimeOld.AllowsDeductions())
	assert.False(t, RegimeNew.AllowsDeductions())
}

func TestIncomeProfile_Defaults(t *testing.T) {
	p := IncomeProfile{
		Age:          65,
		Salary:       decimal.NewFromInt(500000),
		RentalIncome: decimal.NewFromInt(120000),
		OtherIncome:  decimal.NewFromInt(30000),
	}

	assert.True(t, p.GrossIncome().Equal(decimal.NewFromInt(650000)))
	assert.Equal(t, CategorySenior, p.EffectiveCategory())
	assert.Equal(t, RoleSalaried, p.EffectiveRole())

	p.Category = CategoryIndividual
	p.Role = RoleBusiness
	assert.Equal(t, CategoryIndividual, p.EffectiveCategory())
	assert.Equal(t, RoleBusiness, p.EffectiveRole())
}

func TestAgeBandCap_CapFor(t *testing.T) {
	c := AgeBandCap{BelowSeniorAge: decimal.NewFromInt(25000), SeniorAge: decimal.NewFromInt(50000)}

	assert.True(t, c.CapFor(59, 60).Equal(decimal.NewFromInt(25000)))
	assert.True(t, c.CapFor(60, 60).Equal(decimal.NewFromInt(50000)))
}

func TestPolicyRules_Clone(t *testing.T) {
	upper := decimal.NewFromInt(400000)
	original := PolicyRules{
		Slabs: []Slab{
			{UpperBound: &upper, RatePercent: decimal.Zero},
			{RatePercent: decimal.NewFromInt(5)},
		},
		SurchargeBands: []SurchargeBand{{IncomeThreshold: decimal.NewFromInt(5000000), RatePercent: decimal.NewFromInt(10)}},
	}

	copied := original.Clone()
	*copied.Slabs[0].UpperBound = decimal.NewFromInt(1)
	copied.SurchargeBands[0].RatePercent = decimal.NewFromInt(99)

	assert.True(t, original.Slabs[0].UpperBound.Equal(decimal.NewFromInt(400000)))
	assert.True(t, original.SurchargeBands[0].RatePercent.Equal(decimal.NewFromInt(10)))
	assert.True(t, copied.Slabs[1].IsUnbounded())
}

func TestTaxTables_SortedYears(t *testing.T) {
	tables := &TaxTables{Years: map[FinancialYear]YearRules{
		"2023-24": {},
		"2025-26": {},
		"2024-25": {},
	}}

	assert.Equal(t, []FinancialYear{"2025-26", "2024-25", "2023-24"}, tables.SortedYears())
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Year: "2030-31", Category: CategorySenior, Regime: RegimeOld, Reason: "financial year not supported"}

	assert.Equal(t, "tax table [year=2030-31 category=senior regime=old]: financial year not supported", err.Error())
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.True(t, IsConfigurationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(err))

	var target *ConfigurationError
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &target))
	assert.Equal(t, FinancialYear("2030-31"), target.Year)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "savings", Value: "200000", Limit: "150000", Reason: "savings-linked claim exceeds statutory ceiling"}

	assert.Equal(t, "savings = 200000: savings-linked claim exceeds statutory ceiling (limit 150000)", err.Error())
	assert.True(t, IsValidationError(err))
	assert.False(t, IsConfigurationError(err))

	noLimit := &ValidationError{Field: "role", Value: "pilot", Reason: "unknown role"}
	assert.Equal(t, "role = pilot: unknown role", noLimit.Error())
}

func TestTaxComputationResult_EffectiveRatePercent(t *testing.T) {
	r := &TaxComputationResult{GrossIncome: decimal.NewFromInt(1000000), FinalTax: decimal.NewFromInt(52000)}
	assert.True(t, r.EffectiveRatePercent().Equal(decimal.NewFromFloat(5.2)))

	zero := &TaxComputationResult{}
	assert.True(t, zero.EffectiveRatePercent().IsZero())
}

func TestRegimeComparison_Result(t *testing.T) {
	oldResult := &TaxComputationResult{Regime: RegimeOld}
	newResult := &TaxComputationResult{Regime: RegimeNew}
	c := &RegimeComparison{Old: oldResult, New: newResult}

	assert.Same(t, oldResult, c.Result(RegimeOld))
	assert.Same(t, newResult, c.Result(RegimeNew))
}
