package calculation

import (
	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Deduction item names as they appear in a computation breakdown
const (
	DeductionHRA                 = "HRA Exemption"
	DeductionStandard            = "Standard Deduction"
	DeductionSavings             = "Section 80C"
	DeductionInsuranceSelf       = "Section 80D (self)"
	DeductionInsuranceDependents = "Section 80D (dependents)"
	DeductionInterest            = "Section 80TTA"
	DeductionInterestSenior      = "Section 80TTB"
)

var oneHundred = decimal.NewFromInt(100)

// percentOf returns amount × pct / 100
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(oneHundred)
}

// HRAExemption computes the house rent allowance exemption:
// the least of HRA received, a metro-dependent share of salary, and rent paid
// in excess of the rent offset share of salary. Rounded to a whole unit.
func HRAExemption(profile *domain.IncomeProfile, rules domain.HRARules) decimal.Decimal {
	share := rules.NonMetroPercent
	if profile.Metro {
		share = rules.MetroPercent
	}

	salaryShare := percentOf(profile.Salary, share)
	excessRent := decimal.Max(decimal.Zero, profile.RentPaid.Sub(percentOf(profile.Salary, rules.RentOffsetPercent)))

	exemption := decimal.Min(profile.HRAReceived, salaryShare, excessRent)
	if exemption.IsNegative() {
		return decimal.Zero
	}
	return exemption.Round(0)
}

// ResolveDeductions aggregates the capped deductions a profile may claim under a policy.
// The no-deduction regime always yields (0, nil). Over-cap claims are clamped, never
// rejected; standardDeduction is the role amount already resolved from the store.
func ResolveDeductions(profile *domain.IncomeProfile, policy *domain.TaxYearPolicy, limits domain.DeductionLimits, standardDeduction decimal.Decimal) (decimal.Decimal, []domain.DeductionItem) {
	if !policy.Regime.AllowsDeductions() {
		return decimal.Zero, nil
	}

	var items []domain.DeductionItem
	add := func(name string, amount decimal.Decimal) {
		if amount.GreaterThan(decimal.Zero) {
			items = append(items, domain.DeductionItem{Name: name, Amount: amount})
		}
	}

	add(DeductionHRA, HRAExemption(profile, limits.HRA))

	if profile.ClaimStandardDeduction {
		add(DeductionStandard, standardDeduction)
	}

	add(DeductionSavings, clamp(profile.Savings, limits.SavingsCap))

	selfCap := limits.Insurance.Self.CapFor(profile.Age, limits.SeniorAge)
	add(DeductionInsuranceSelf, clamp(profile.Insurance.Self, selfCap))

	dependentCap := limits.Insurance.Dependents.CapFor(profile.Insurance.DependentAge, limits.SeniorAge)
	add(DeductionInsuranceDependents, clamp(profile.Insurance.Dependents, dependentCap))

	interestName := DeductionInterest
	if profile.Age >= limits.SeniorAge {
		interestName = DeductionInterestSenior
	}
	add(interestName, clamp(profile.SavingsInterest, limits.Interest.CapFor(profile.Age, limits.SeniorAge)))

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	return total.Round(0), items
}

// clamp bounds a claim to [0, limit]
func clamp(claim, limit decimal.Decimal) decimal.Decimal {
	if claim.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(claim, limit)
}
