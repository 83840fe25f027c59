package calculation

import (
	"fmt"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the deduction resolver and slab evaluator against a table store
type CalculationEngine struct {
	Store  *TaxTableStore
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine over store
func NewCalculationEngine(store *TaxTableStore) *CalculationEngine {
	return &CalculationEngine{
		Store:  store,
		Logger: NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes the full tax liability of profile for one year and regime.
// A missing table key fails with a ConfigurationError and no partial result.
func (ce *CalculationEngine) Calculate(profile *domain.IncomeProfile, year domain.FinancialYear, regime domain.Regime) (*domain.TaxComputationResult, error) {
	category := profile.EffectiveCategory()

	policy, err := ce.Store.PolicyFor(year, category, regime)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve policy: %w", err)
	}

	limits, err := ce.Store.DeductionLimitsFor(year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deduction limits: %w", err)
	}

	standardDeduction := decimal.Zero
	if regime.AllowsDeductions() && profile.ClaimStandardDeduction {
		standardDeduction, err = ce.Store.StandardDeductionFor(year, regime, profile.EffectiveRole())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve standard deduction: %w", err)
		}
	}

	gross := profile.GrossIncome()
	totalDeductions, items := ResolveDeductions(profile, policy, limits, standardDeduction)
	taxable := decimal.Max(decimal.Zero, gross.Sub(totalDeductions))

	ce.Logger.Debugf("%s %s/%s: gross=%s deductions=%s taxable=%s",
		year, category, regime, gross.StringFixed(0), totalDeductions.StringFixed(0), taxable.StringFixed(0))

	result := Evaluate(taxable, policy)
	result.GrossIncome = gross
	result.Deductions = items
	result.TotalDeductions = totalDeductions

	ce.Logger.Debugf("%s %s/%s: base=%s rebate=%s surcharge=%s cess=%s final=%s",
		year, category, regime,
		result.BaseTax.StringFixed(2), result.Rebate.StringFixed(2), result.Surcharge.StringFixed(2),
		result.Cess.StringFixed(2), result.FinalTax.StringFixed(0))

	return result, nil
}
