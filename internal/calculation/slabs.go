package calculation

import (
	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Evaluate applies a policy to taxable income: marginal slabs, then rebate,
// surcharge and cess in that order. The returned result carries only the
// evaluator's fields; gross income and deductions are filled in by Calculate.
//
// Callers must pass validated, non-negative input; a negative amount is
// treated as zero.
func Evaluate(taxableIncome decimal.Decimal, policy *domain.TaxYearPolicy) *domain.TaxComputationResult {
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	result := &domain.TaxComputationResult{
		Year:            policy.Year,
		Category:        policy.Category,
		Regime:          policy.Regime,
		TaxableIncome:   taxableIncome,
		CessRatePercent: policy.CessRatePercent,
	}

	// Slabs: remaining income is consumed bracket by bracket
	baseTax := decimal.Zero
	remaining := taxableIncome
	lower := decimal.Zero
	for _, slab := range policy.Slabs {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		inSlab := remaining
		var upper *decimal.Decimal
		if !slab.IsUnbounded() {
			ub := *slab.UpperBound
			upper = &ub
			inSlab = decimal.Min(remaining, ub.Sub(lower))
		}

		tax := percentOf(inSlab, slab.RatePercent)
		result.Slabs = append(result.Slabs, domain.SlabContribution{
			Lower:         lower,
			Upper:         upper,
			RatePercent:   slab.RatePercent,
			TaxableAmount: inSlab,
			Tax:           tax,
		})

		baseTax = baseTax.Add(tax)
		remaining = remaining.Sub(inSlab)
		if upper != nil {
			lower = *upper
		}
	}
	result.BaseTax = baseTax

	// Rebate: full credit up to the cap when income is at or below the threshold
	rebate := decimal.Zero
	if taxableIncome.LessThanOrEqual(policy.Rebate.IncomeThreshold) {
		rebate = decimal.Min(baseTax, policy.Rebate.MaxRebate)
	}
	result.Rebate = rebate
	result.TaxAfterRebate = decimal.Max(decimal.Zero, baseTax.Sub(rebate))

	// Surcharge: only the highest band exceeded applies
	result.SurchargeRatePercent = SurchargeRate(taxableIncome, policy.SurchargeBands)
	result.Surcharge = percentOf(result.TaxAfterRebate, result.SurchargeRatePercent)

	result.Cess = percentOf(result.TaxAfterRebate.Add(result.Surcharge), policy.CessRatePercent)
	result.FinalTax = result.TaxAfterRebate.Add(result.Surcharge).Add(result.Cess).Round(0)

	return result
}

// SurchargeRate scans bands from the highest threshold down and returns the
// rate of the first band the income strictly exceeds, or zero.
func SurchargeRate(taxableIncome decimal.Decimal, bands []domain.SurchargeBand) decimal.Decimal {
	for i := len(bands) - 1; i >= 0; i-- {
		if taxableIncome.GreaterThan(bands[i].IncomeThreshold) {
			return bands[i].RatePercent
		}
	}
	return decimal.Zero
}
