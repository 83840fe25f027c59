package calculation

import (
	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxTableStore is the immutable lookup of tax policy by (year, category, regime).
// It is built once from validated tables; every accessor returns a copy so the
// store is safe to share between goroutines.
type TaxTableStore struct {
	metadata     domain.TablesMetadata
	reviewLimits domain.ReviewLimits
	years        map[domain.FinancialYear]domain.YearRules
	ordered      []domain.FinancialYear
}

// NewTaxTableStore snapshots the given tables. The caller keeps ownership of tables.
func NewTaxTableStore(tables *domain.TaxTables) *TaxTableStore {
	store := &TaxTableStore{
		metadata:     tables.Metadata,
		reviewLimits: tables.ReviewLimits,
		years:        make(map[domain.FinancialYear]domain.YearRules, len(tables.Years)),
		ordered:      tables.SortedYears(),
	}

	for year, rules := range tables.Years {
		copied := domain.YearRules{
			Policies:           make(map[domain.Category]map[domain.Regime]domain.PolicyRules, len(rules.Policies)),
			StandardDeductions: make(map[domain.Regime]map[domain.Role]decimal.Decimal, len(rules.StandardDeductions)),
			DeductionLimits:    rules.DeductionLimits,
		}
		for category, regimes := range rules.Policies {
			copied.Policies[category] = make(map[domain.Regime]domain.PolicyRules, len(regimes))
			for regime, policy := range regimes {
				copied.Policies[category][regime] = policy.Clone()
			}
		}
		for regime, roles := range rules.StandardDeductions {
			copied.StandardDeductions[regime] = make(map[domain.Role]decimal.Decimal, len(roles))
			for role, amount := range roles {
				copied.StandardDeductions[regime][role] = amount
			}
		}
		store.years[year] = copied
	}

	return store
}

// PolicyFor resolves the policy for a key, failing with a ConfigurationError if absent
func (s *TaxTableStore) PolicyFor(year domain.FinancialYear, category domain.Category, regime domain.Regime) (*domain.TaxYearPolicy, error) {
	rules, ok := s.years[year]
	if !ok {
		return nil, &domain.ConfigurationError{Year: year, Category: category, Regime: regime, Reason: "financial year not supported"}
	}
	regimes, ok := rules.Policies[category]
	if !ok {
		return nil, &domain.ConfigurationError{Year: year, Category: category, Regime: regime, Reason: "assessee category not supported"}
	}
	policy, ok := regimes[regime]
	if !ok {
		return nil, &domain.ConfigurationError{Year: year, Category: category, Regime: regime, Reason: "regime not supported"}
	}

	return &domain.TaxYearPolicy{
		Year:        year,
		Category:    category,
		Regime:      regime,
		PolicyRules: policy.Clone(),
	}, nil
}

// StandardDeductionFor resolves the standard deduction for a role under a regime
func (s *TaxTableStore) StandardDeductionFor(year domain.FinancialYear, regime domain.Regime, role domain.Role) (decimal.Decimal, error) {
	rules, ok := s.years[year]
	if !ok {
		return decimal.Zero, &domain.ConfigurationError{Year: year, Regime: regime, Role: role, Reason: "financial year not supported"}
	}
	amount, ok := rules.StandardDeductions[regime][role]
	if !ok {
		return decimal.Zero, &domain.ConfigurationError{Year: year, Regime: regime, Role: role, Reason: "standard deduction not defined"}
	}
	return amount, nil
}

// DeductionLimitsFor returns the deduction caps of a financial year
func (s *TaxTableStore) DeductionLimitsFor(year domain.FinancialYear) (domain.DeductionLimits, error) {
	rules, ok := s.years[year]
	if !ok {
		return domain.DeductionLimits{}, &domain.ConfigurationError{Year: year, Field: "deduction_limits", Reason: "financial year not supported"}
	}
	return rules.DeductionLimits, nil
}

// Years lists the supported financial years, newest first
func (s *TaxTableStore) Years() []domain.FinancialYear {
	return append([]domain.FinancialYear(nil), s.ordered...)
}

// LatestYear returns the newest supported financial year
func (s *TaxTableStore) LatestYear() domain.FinancialYear {
	if len(s.ordered) == 0 {
		return ""
	}
	return s.ordered[0]
}

// Categories lists the assessee categories defined for a year in age order
func (s *TaxTableStore) Categories(year domain.FinancialYear) []domain.Category {
	rules, ok := s.years[year]
	if !ok {
		return nil
	}
	var out []domain.Category
	for _, c := range domain.Categories {
		if _, ok := rules.Policies[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Metadata returns the provenance of the loaded tables
func (s *TaxTableStore) Metadata() domain.TablesMetadata {
	return s.metadata
}

// ReviewLimits returns the input boundary ceilings carried by the tables
func (s *TaxTableStore) ReviewLimits() domain.ReviewLimits {
	return s.reviewLimits
}
