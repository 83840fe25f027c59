package config

import (
	"fmt"
	"os"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of income profile files
type InputParser struct {
	Limits domain.ReviewLimits
}

// NewInputParser creates a new input parser enforcing the given review limits
func NewInputParser(limits domain.ReviewLimits) *InputParser {
	return &InputParser{Limits: limits}
}

// LoadFromFile loads an income profile from a YAML or JSON file.
// Non-fatal review warnings are returned alongside the profile.
func (ip *InputParser) LoadFromFile(filename string) (*domain.IncomeProfile, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.IncomeProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	warnings, err := ip.ValidateProfile(&profile)
	if err != nil {
		return nil, nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, warnings, nil
}

// ValidateProfile rejects malformed input before it reaches the calculator.
// Incomes above the review threshold pass with a warning.
func (ip *InputParser) ValidateProfile(profile *domain.IncomeProfile) ([]string, error) {
	if profile.Age < 0 || profile.Age > 130 {
		return nil, &domain.ValidationError{Field: "age", Value: fmt.Sprint(profile.Age), Limit: "0-130", Reason: "age out of range"}
	}
	if profile.Category != "" && !profile.Category.Valid() {
		return nil, &domain.ValidationError{Field: "category", Value: string(profile.Category), Reason: "unknown assessee category"}
	}
	if profile.Role != "" && !profile.Role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Value: string(profile.Role), Reason: "unknown role"}
	}
	if profile.Insurance.DependentAge < 0 {
		return nil, &domain.ValidationError{Field: "insurance.dependent_age", Value: fmt.Sprint(profile.Insurance.DependentAge), Reason: "age cannot be negative"}
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"salary", profile.Salary},
		{"rental_income", profile.RentalIncome},
		{"other_income", profile.OtherIncome},
		{"savings", profile.Savings},
		{"insurance.self", profile.Insurance.Self},
		{"insurance.dependents", profile.Insurance.Dependents},
		{"savings_interest", profile.SavingsInterest},
		{"hra_received", profile.HRAReceived},
		{"rent_paid", profile.RentPaid},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return nil, &domain.ValidationError{Field: a.field, Value: a.value.String(), Reason: "amount cannot be negative"}
		}
	}

	gross := profile.GrossIncome()
	if gross.GreaterThan(ip.Limits.MaxIncome) {
		return nil, &domain.ValidationError{
			Field:  "gross_income",
			Value:  gross.String(),
			Limit:  ip.Limits.MaxIncome.String(),
			Reason: "income requires manual professional review",
		}
	}

	if profile.Savings.GreaterThan(ip.Limits.MaxSavingsClaim) {
		return nil, &domain.ValidationError{
			Field:  "savings",
			Value:  profile.Savings.String(),
			Limit:  ip.Limits.MaxSavingsClaim.String(),
			Reason: "savings-linked claim exceeds statutory ceiling",
		}
	}
	if profile.Insurance.Total().GreaterThan(ip.Limits.MaxInsuranceClaim) {
		return nil, &domain.ValidationError{
			Field:  "insurance",
			Value:  profile.Insurance.Total().String(),
			Limit:  ip.Limits.MaxInsuranceClaim.String(),
			Reason: "insurance-linked claim exceeds statutory ceiling",
		}
	}

	var warnings []string
	if !ip.Limits.ReviewIncome.IsZero() && gross.GreaterThan(ip.Limits.ReviewIncome) {
		warnings = append(warnings, fmt.Sprintf("gross income %s exceeds %s: professional consultation recommended",
			gross.StringFixed(0), ip.Limits.ReviewIncome.StringFixed(0)))
	}

	return warnings, nil
}
