package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeProfile is the caller-supplied input for one tax computation.
// It is treated as immutable for the duration of a calculation.
type IncomeProfile struct {
	Name     string   `yaml:"name" json:"name"`
	Age      int      `yaml:"age" json:"age"`
	Category Category `yaml:"category" json:"category"`
	Role     Role     `yaml:"role" json:"role"`

	// Income heads
	Salary       decimal.Decimal `yaml:"salary" json:"salary"`
	RentalIncome decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	OtherIncome  decimal.Decimal `yaml:"other_income" json:"other_income"`

	// Claims (old regime only)
	Savings                decimal.Decimal `yaml:"savings" json:"savings"`
	Insurance              InsuranceClaim  `yaml:"insurance" json:"insurance"`
	SavingsInterest        decimal.Decimal `yaml:"savings_interest" json:"savings_interest"`
	HRAReceived            decimal.Decimal `yaml:"hra_received" json:"hra_received"`
	RentPaid               decimal.Decimal `yaml:"rent_paid" json:"rent_paid"`
	Metro                  bool            `yaml:"metro" json:"metro"`
	ClaimStandardDeduction bool            `yaml:"standard_deduction" json:"standard_deduction"`
}

// InsuranceClaim splits health insurance premiums into self and dependents
type InsuranceClaim struct {
	Self         decimal.Decimal `yaml:"self" json:"self"`
	Dependents   decimal.Decimal `yaml:"dependents" json:"dependents"`
	DependentAge int             `yaml:"dependent_age" json:"dependent_age"`
}

// Total returns the combined insurance claim
func (c InsuranceClaim) Total() decimal.Decimal {
	return c.Self.Add(c.Dependents)
}

// GrossIncome is the sum of the three income heads
func (p IncomeProfile) GrossIncome() decimal.Decimal {
	return p.Salary.Add(p.RentalIncome).Add(p.OtherIncome)
}

// EffectiveCategory returns the explicit category, or derives one from age
func (p IncomeProfile) EffectiveCategory() Category {
	if p.Category != "" {
		return p.Category
	}
	return CategoryForAge(p.Age)
}

// EffectiveRole returns the explicit role, defaulting to salaried
func (p IncomeProfile) EffectiveRole() Role {
	if p.Role != "" {
		return p.Role
	}
	return RoleSalaried
}
