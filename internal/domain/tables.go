package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FinancialYear identifies a tax table year, e.g. "2025-26"
type FinancialYear string

// Category is the assessee category a slab table applies to
type Category string

const (
	CategoryIndividual  Category = "individual"
	CategorySenior      Category = "senior"
	CategorySuperSenior Category = "super_senior"
)

// Categories lists every assessee category in age order
var Categories = []Category{CategoryIndividual, CategorySenior, CategorySuperSenior}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryIndividual, CategorySenior, CategorySuperSenior:
		return true
	}
	return false
}

// CategoryForAge maps an age to its assessee category
func CategoryForAge(age int) Category {
	switch {
	case age >= 80:
		return CategorySuperSenior
	case age >= 60:
		return CategorySenior
	default:
		return CategoryIndividual
	}
}

// Regime is a named tax policy variant selectable per computation
type Regime string

const (
	// RegimeOld permits HRA exemption, capped deductions and standard deduction
	RegimeOld Regime = "old"
	// RegimeNew grants no deductions at all
	RegimeNew Regime = "new"
)

// Regimes lists both regimes, deduction-permitting first
var Regimes = []Regime{RegimeOld, RegimeNew}

// Valid reports whether r is a known regime
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// AllowsDeductions reports whether the regime honours deduction claims
func (r Regime) AllowsDeductions() bool {
	return r == RegimeOld
}

// Role selects which standard deduction amount applies
type Role string

const (
	RoleSalaried Role = "salaried"
	RoleBusiness Role = "business"
	RolePension  Role = "pension"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleSalaried, RoleBusiness, RolePension:
		return true
	}
	return false
}

// TaxTables is the full versioned tax table document.
// It is loaded once at startup and never mutated afterwards.
type TaxTables struct {
	Metadata     TablesMetadata              `yaml:"metadata" json:"metadata"`
	ReviewLimits ReviewLimits                `yaml:"review_limits" json:"review_limits"`
	Years        map[FinancialYear]YearRules `yaml:"years" json:"years"`
}

// TablesMetadata records provenance of the tax tables
type TablesMetadata struct {
	Version         string `yaml:"version" json:"version"`
	LastUpdated     string `yaml:"last_updated" json:"last_updated"`
	UpdatedBy       string `yaml:"updated_by" json:"updated_by"`
	SourceAuthority string `yaml:"source_authority" json:"source_authority"`
	NextReviewDate  string `yaml:"next_review_date" json:"next_review_date"`
	Disclaimer      string `yaml:"disclaimer" json:"disclaimer"`
}

// ReviewLimits are the absolute ceilings the input boundary enforces
type ReviewLimits struct {
	MaxIncome         decimal.Decimal `yaml:"max_income" json:"max_income"`
	ReviewIncome      decimal.Decimal `yaml:"review_income" json:"review_income"`
	MaxSavingsClaim   decimal.Decimal `yaml:"max_savings_claim" json:"max_savings_claim"`
	MaxInsuranceClaim decimal.Decimal `yaml:"max_insurance_claim" json:"max_insurance_claim"`
}

// YearRules holds everything that varies by financial year
type YearRules struct {
	Policies           map[Category]map[Regime]PolicyRules `yaml:"policies" json:"policies"`
	StandardDeductions map[Regime]map[Role]decimal.Decimal `yaml:"standard_deductions" json:"standard_deductions"`
	DeductionLimits    DeductionLimits                     `yaml:"deduction_limits" json:"deduction_limits"`
}

// PolicyRules is the serialized form of a TaxYearPolicy
type PolicyRules struct {
	Slabs           []Slab          `yaml:"slabs" json:"slabs"`
	Rebate          Rebate          `yaml:"rebate" json:"rebate"`
	SurchargeBands  []SurchargeBand `yaml:"surcharge" json:"surcharge"`
	CessRatePercent decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	CessName        string          `yaml:"cess_name" json:"cess_name"`
}

// Slab is one marginal-rate bracket. A nil UpperBound means unbounded.
type Slab struct {
	UpperBound  *decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	RatePercent decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the slab extends to infinity
func (s Slab) IsUnbounded() bool {
	return s.UpperBound == nil
}

// Rebate grants a capped tax credit at or below an income threshold
type Rebate struct {
	IncomeThreshold decimal.Decimal `yaml:"income_threshold" json:"income_threshold"`
	MaxRebate       decimal.Decimal `yaml:"max_rebate" json:"max_rebate"`
}

// SurchargeBand applies RatePercent once taxable income exceeds IncomeThreshold
type SurchargeBand struct {
	IncomeThreshold decimal.Decimal `yaml:"income_threshold" json:"income_threshold"`
	RatePercent     decimal.Decimal `yaml:"rate" json:"rate"`
}

// DeductionLimits are the per-year caps applied to deduction claims
type DeductionLimits struct {
	SeniorAge  int             `yaml:"senior_age" json:"senior_age"`
	SavingsCap decimal.Decimal `yaml:"savings_cap" json:"savings_cap"`
	Insurance  InsuranceCaps   `yaml:"insurance" json:"insurance"`
	Interest   AgeBandCap      `yaml:"interest" json:"interest"`
	HRA        HRARules        `yaml:"hra" json:"hra"`
}

// InsuranceCaps caps health insurance premiums per bucket
type InsuranceCaps struct {
	Self       AgeBandCap `yaml:"self" json:"self"`
	Dependents AgeBandCap `yaml:"dependents" json:"dependents"`
}

// AgeBandCap selects a cap by comparing an age with the senior age
type AgeBandCap struct {
	BelowSeniorAge decimal.Decimal `yaml:"below_senior_age" json:"below_senior_age"`
	SeniorAge      decimal.Decimal `yaml:"senior_age" json:"senior_age"`
}

// CapFor returns the cap for age given the senior age threshold
func (c AgeBandCap) CapFor(age, seniorAge int) decimal.Decimal {
	if age >= seniorAge {
		return c.SeniorAge
	}
	return c.BelowSeniorAge
}

// HRARules parameterise the house rent allowance exemption
type HRARules struct {
	MetroPercent      decimal.Decimal `yaml:"metro_percent" json:"metro_percent"`
	NonMetroPercent   decimal.Decimal `yaml:"non_metro_percent" json:"non_metro_percent"`
	RentOffsetPercent decimal.Decimal `yaml:"rent_offset_percent" json:"rent_offset_percent"`
}

// TaxYearPolicy is the resolved policy for one (year, category, regime) key
type TaxYearPolicy struct {
	Year     FinancialYear `json:"year"`
	Category Category      `json:"category"`
	Regime   Regime        `json:"regime"`
	PolicyRules
}

// Clone returns a deep copy so callers can never alias table storage
func (p PolicyRules) Clone() PolicyRules {
	out := p
	out.Slabs = make([]Slab, len(p.Slabs))
	for i, s := range p.Slabs {
		out.Slabs[i] = Slab{RatePercent: s.RatePercent}
		if s.UpperBound != nil {
			ub := *s.UpperBound
			out.Slabs[i].UpperBound = &ub
		}
	}
	out.SurchargeBands = append([]SurchargeBand(nil), p.SurchargeBands...)
	return out
}

// SortedYears returns the table years newest first
func (t *TaxTables) SortedYears() []FinancialYear {
	years := make([]FinancialYear, 0, len(t.Years))
	for y := range t.Years {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] > years[j] })
	return years
}
