package calculation

import (
	"fmt"
	"testing"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures debug lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Warnf(string, ...any)  {}
func (l *recordingLogger) Errorf(string, ...any) {}

func TestNewCalculationEngine(t *testing.T) {
	store := defaultStore(t)
	engine := NewCalculationEngine(store)

	assert.Same(t, store, engine.Store)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	custom := &recordingLogger{}
	engine.SetLogger(custom)
	assert.Equal(t, custom, engine.Logger)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

// salariedProfile claims every old-regime deduction available to a salaried individual
func salariedProfile() *domain.IncomeProfile {
	return &domain.IncomeProfile{
		Name:                   "salaried",
		Age:                    35,
		Salary:                 dec(2500000),
		Savings:                dec(150000),
		Insurance:              domain.InsuranceClaim{Self: dec(25000), Dependents: dec(50000), DependentAge: 65},
		SavingsInterest:        dec(12000),
		HRAReceived:            dec(600000),
		RentPaid:               dec(900000),
		Metro:                  true,
		ClaimStandardDeduction: true,
	}
}

func TestCalculationEngine_Calculate_OldRegime(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	result, err := engine.Calculate(salariedProfile(), testYear, domain.RegimeOld)
	require.NoError(t, err)

	assertItems(t, []domain.DeductionItem{
		{Name: DeductionHRA, Amount: dec(600000)},
		{Name: DeductionStandard, Amount: dec(50000)},
		{Name: DeductionSavings, Amount: dec(150000)},
		{Name: DeductionInsuranceSelf, Amount: dec(25000)},
		{Name: DeductionInsuranceDependents, Amount: dec(50000)},
		{Name: DeductionInterest, Amount: dec(10000)},
	}, result.Deductions)

	assert.Equal(t, domain.CategoryIndividual, result.Category)
	assert.True(t, result.GrossIncome.Equal(dec(2500000)))
	assert.True(t, result.TotalDeductions.Equal(dec(885000)))
	assert.True(t, result.TaxableIncome.Equal(dec(1615000)))
	assert.True(t, result.BaseTax.Equal(dec(297000)))
	assert.True(t, result.Cess.Equal(dec(11880)))
	assert.True(t, result.FinalTax.Equal(dec(308880)))
}

func TestCalculationEngine_Calculate_NewRegimeIgnoresClaims(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	result, err := engine.Calculate(salariedProfile(), testYear, domain.RegimeNew)
	require.NoError(t, err)

	assert.Empty(t, result.Deductions)
	assert.True(t, result.TotalDeductions.IsZero())
	assert.True(t, result.TaxableIncome.Equal(dec(2500000)))
	assert.True(t, result.BaseTax.Equal(dec(330000)))
	assert.True(t, result.FinalTax.Equal(dec(343200)))
}

func TestCalculationEngine_Calculate_BothRegimes(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))
	profile := salariedProfile()

	oldResult, err := engine.Calculate(profile, testYear, domain.RegimeOld)
	require.NoError(t, err)
	newResult, err := engine.Calculate(profile, testYear, domain.RegimeNew)
	require.NoError(t, err)

	assert.True(t, oldResult.GrossIncome.Equal(newResult.GrossIncome))
	assert.True(t, oldResult.TotalDeductions.GreaterThan(dec(0)))
	assert.True(t, newResult.TotalDeductions.IsZero())
	assert.False(t, oldResult.FinalTax.Equal(newResult.FinalTax))
}

func TestCalculationEngine_Calculate_CategoryFromAge(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	tests := []struct {
		name     string
		profile  domain.IncomeProfile
		category domain.Category
		final    int64
	}{
		{"senior below rebate threshold", domain.IncomeProfile{Age: 65, Salary: dec(450000)}, domain.CategorySenior, 0},
		{"super senior", domain.IncomeProfile{Age: 85, Salary: dec(900000)}, domain.CategorySuperSenior, 83200},
		{"explicit category wins", domain.IncomeProfile{Age: 85, Category: domain.CategoryIndividual, Salary: dec(900000)}, domain.CategoryIndividual, 96200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(&tt.profile, testYear, domain.RegimeOld)
			require.NoError(t, err)
			assert.Equal(t, tt.category, result.Category)
			assert.True(t, result.FinalTax.Equal(dec(tt.final)), "got %s", result.FinalTax)
		})
	}
}

func TestCalculationEngine_Calculate_PensionStandardDeduction(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))
	profile := &domain.IncomeProfile{Age: 62, Role: domain.RolePension, Salary: dec(600000), ClaimStandardDeduction: true}

	result, err := engine.Calculate(profile, testYear, domain.RegimeOld)
	require.NoError(t, err)

	assertItems(t, []domain.DeductionItem{{Name: DeductionStandard, Amount: dec(15000)}}, result.Deductions)
	assert.True(t, result.TaxableIncome.Equal(dec(585000)))
}

func TestCalculationEngine_Calculate_MissingTableKey(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	result, err := engine.Calculate(salariedProfile(), "2019-20", domain.RegimeOld)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "failed to resolve policy")

	result, err = engine.Calculate(salariedProfile(), testYear, "flat")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsConfigurationError(err))
}

func TestCalculationEngine_Calculate_ZeroIncome(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))

	for _, regime := range domain.Regimes {
		result, err := engine.Calculate(&domain.IncomeProfile{}, testYear, regime)
		require.NoError(t, err)
		assert.True(t, result.FinalTax.IsZero())
		assert.True(t, result.EffectiveRatePercent().IsZero())
	}
}

func TestCalculationEngine_Calculate_DeductionsExceedIncome(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))
	profile := &domain.IncomeProfile{Salary: dec(100000), Savings: dec(150000), ClaimStandardDeduction: true}

	result, err := engine.Calculate(profile, testYear, domain.RegimeOld)
	require.NoError(t, err)
	assert.True(t, result.TaxableIncome.IsZero())
	assert.True(t, result.FinalTax.IsZero())
}

func TestCalculationEngine_Calculate_LogsDebug(t *testing.T) {
	engine := NewCalculationEngine(defaultStore(t))
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	_, err := engine.Calculate(salariedProfile(), testYear, domain.RegimeOld)
	require.NoError(t, err)

	require.Len(t, logger.lines, 2)
	assert.Contains(t, logger.lines[0], "taxable=1615000")
	assert.Contains(t, logger.lines[1], "final=308880")
}
