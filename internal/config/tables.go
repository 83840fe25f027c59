package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tables/tax_tables.yaml
var defaultTables []byte

var hundred = decimal.NewFromInt(100)

// TablesParser handles parsing and validation of tax table documents
type TablesParser struct{}

// NewTablesParser creates a new tables parser
func NewTablesParser() *TablesParser {
	return &TablesParser{}
}

// LoadDefaultTables parses the tax tables compiled into the binary
func (tp *TablesParser) LoadDefaultTables() (*domain.TaxTables, error) {
	return tp.Parse(defaultTables)
}

// LoadFromFile loads tax tables from a YAML file
func (tp *TablesParser) LoadFromFile(filename string) (*domain.TaxTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return tp.Parse(data)
}

// Parse decodes and validates a tax table document
func (tp *TablesParser) Parse(data []byte) (*domain.TaxTables, error) {
	var tables domain.TaxTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := tp.ValidateTables(&tables); err != nil {
		return nil, fmt.Errorf("tax table validation failed: %w", err)
	}

	return &tables, nil
}

// ValidateTables checks every structural invariant of the tax tables.
// Every category listed for a year must resolve for both regimes.
func (tp *TablesParser) ValidateTables(tables *domain.TaxTables) error {
	if tables.Metadata.Version == "" {
		return &domain.ConfigurationError{Field: "metadata.version", Reason: "version is required"}
	}
	if len(tables.Years) == 0 {
		return &domain.ConfigurationError{Field: "years", Reason: "at least one financial year is required"}
	}
	if err := tp.validateReviewLimits(tables.ReviewLimits); err != nil {
		return err
	}

	for _, year := range tables.SortedYears() {
		rules := tables.Years[year]
		if len(rules.Policies) == 0 {
			return &domain.ConfigurationError{Year: year, Field: "policies", Reason: "no assessee categories defined"}
		}
		for category := range rules.Policies {
			if !category.Valid() {
				return &domain.ConfigurationError{Year: year, Category: category, Reason: "unknown assessee category"}
			}
		}
		for _, category := range domain.Categories {
			regimes, ok := rules.Policies[category]
			if !ok {
				continue
			}
			for regime := range regimes {
				if !regime.Valid() {
					return &domain.ConfigurationError{Year: year, Category: category, Regime: regime, Reason: "unknown regime"}
				}
			}
			for _, regime := range domain.Regimes {
				policy, ok := regimes[regime]
				if !ok {
					return &domain.ConfigurationError{Year: year, Category: category, Regime: regime, Reason: "regime not defined"}
				}
				if err := tp.validatePolicy(year, category, regime, policy); err != nil {
					return err
				}
			}
		}

		for _, regime := range domain.Regimes {
			roles, ok := rules.StandardDeductions[regime]
			if !ok {
				return &domain.ConfigurationError{Year: year, Regime: regime, Field: "standard_deductions", Reason: "regime not defined"}
			}
			for role, amount := range roles {
				if !role.Valid() {
					return &domain.ConfigurationError{Year: year, Regime: regime, Role: role, Reason: "unknown role"}
				}
				if amount.IsNegative() {
					return &domain.ConfigurationError{Year: year, Regime: regime, Role: role, Field: "standard_deductions", Reason: "amount cannot be negative"}
				}
			}
		}

		if err := tp.validateDeductionLimits(year, rules.DeductionLimits); err != nil {
			return err
		}
	}

	return nil
}

// validatePolicy validates one (year, category, regime) policy
func (tp *TablesParser) validatePolicy(year domain.FinancialYear, category domain.Category, regime domain.Regime, policy domain.PolicyRules) error {
	fail := func(field, format string, args ...any) error {
		return &domain.ConfigurationError{
			Year:     year,
			Category: category,
			Regime:   regime,
			Field:    field,
			Reason:   fmt.Sprintf(format, args...),
		}
	}

	if len(policy.Slabs) == 0 {
		return fail("slabs", "at least one slab is required")
	}

	previous := decimal.Zero
	for i, slab := range policy.Slabs {
		field := fmt.Sprintf("slabs[%d]", i)
		if slab.RatePercent.IsNegative() || slab.RatePercent.GreaterThan(hundred) {
			return fail(field, "rate %s must be between 0 and 100", slab.RatePercent)
		}
		if slab.IsUnbounded() {
			if i != len(policy.Slabs)-1 {
				return fail(field, "only the last slab may be unbounded")
			}
			continue
		}
		if i == len(policy.Slabs)-1 {
			return fail(field, "last slab must be unbounded")
		}
		if !slab.UpperBound.GreaterThan(previous) {
			return fail(field, "upper bound %s must exceed %s", slab.UpperBound, previous)
		}
		previous = *slab.UpperBound
	}

	if policy.Rebate.IncomeThreshold.IsNegative() || policy.Rebate.MaxRebate.IsNegative() {
		return fail("rebate", "threshold and maximum cannot be negative")
	}

	for i, band := range policy.SurchargeBands {
		field := fmt.Sprintf("surcharge[%d]", i)
		if band.RatePercent.IsNegative() || band.RatePercent.GreaterThan(hundred) {
			return fail(field, "rate %s must be between 0 and 100", band.RatePercent)
		}
		if band.IncomeThreshold.IsNegative() {
			return fail(field, "threshold cannot be negative")
		}
		if i > 0 && !band.IncomeThreshold.GreaterThan(policy.SurchargeBands[i-1].IncomeThreshold) {
			return fail(field, "thresholds must be strictly increasing")
		}
	}

	if policy.CessRatePercent.IsNegative() || policy.CessRatePercent.GreaterThan(hundred) {
		return fail("cess_rate", "rate %s must be between 0 and 100", policy.CessRatePercent)
	}

	return nil
}

// validateDeductionLimits validates the per-year deduction caps
func (tp *TablesParser) validateDeductionLimits(year domain.FinancialYear, limits domain.DeductionLimits) error {
	fail := func(field, reason string) error {
		return &domain.ConfigurationError{Year: year, Field: "deduction_limits." + field, Reason: reason}
	}

	if limits.SeniorAge <= 0 {
		return fail("senior_age", "senior age must be positive")
	}
	if limits.SavingsCap.IsNegative() {
		return fail("savings_cap", "cap cannot be negative")
	}
	caps := []struct {
		field string
		cap   domain.AgeBandCap
	}{
		{"insurance.self", limits.Insurance.Self},
		{"insurance.dependents", limits.Insurance.Dependents},
		{"interest", limits.Interest},
	}
	for _, c := range caps {
		if c.cap.BelowSeniorAge.IsNegative() || c.cap.SeniorAge.IsNegative() {
			return fail(c.field, "cap cannot be negative")
		}
	}
	if limits.HRA.MetroPercent.LessThanOrEqual(decimal.Zero) || limits.HRA.MetroPercent.GreaterThan(hundred) {
		return fail("hra.metro_percent", "must be between 0 and 100")
	}
	if limits.HRA.NonMetroPercent.LessThanOrEqual(decimal.Zero) || limits.HRA.NonMetroPercent.GreaterThan(hundred) {
		return fail("hra.non_metro_percent", "must be between 0 and 100")
	}
	if limits.HRA.RentOffsetPercent.IsNegative() || limits.HRA.RentOffsetPercent.GreaterThan(hundred) {
		return fail("hra.rent_offset_percent", "must be between 0 and 100")
	}
	return nil
}

// validateReviewLimits validates the input boundary ceilings
func (tp *TablesParser) validateReviewLimits(limits domain.ReviewLimits) error {
	if limits.MaxIncome.LessThanOrEqual(decimal.Zero) {
		return &domain.ConfigurationError{Field: "review_limits.max_income", Reason: "must be positive"}
	}
	if limits.ReviewIncome.IsNegative() || limits.ReviewIncome.GreaterThan(limits.MaxIncome) {
		return &domain.ConfigurationError{Field: "review_limits.review_income", Reason: "must be between 0 and max_income"}
	}
	if limits.MaxSavingsClaim.IsNegative() || limits.MaxInsuranceClaim.IsNegative() {
		return &domain.ConfigurationError{Field: "review_limits", Reason: "claim ceilings cannot be negative"}
	}
	return nil
}
