package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks a missing or malformed tax table entry.
	// It is permanent for a given table and must never fall back to another year.
	ErrConfiguration = errors.New("tax table configuration error")

	// ErrValidation marks caller input rejected at the boundary.
	ErrValidation = errors.New("invalid income profile")
)

// ConfigurationError names the table key and field that could not be resolved
type ConfigurationError struct {
	Year     FinancialYear
	Category Category
	Regime   Regime
	Role     Role
	Field    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	var key []string
	if e.Year != "" {
		key = append(key, "year="+string(e.Year))
	}
	if e.Category != "" {
		key = append(key, "category="+string(e.Category))
	}
	if e.Regime != "" {
		key = append(key, "regime="+string(e.Regime))
	}
	if e.Role != "" {
		key = append(key, "role="+string(e.Role))
	}
	if e.Field != "" {
		key = append(key, "field="+e.Field)
	}
	return fmt.Sprintf("tax table [%s]: %s", strings.Join(key, " "), e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ValidationError names the profile field, the offending value and the limit it broke
type ValidationError struct {
	Field  string
	Value  string
	Limit  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Limit != "" {
		return fmt.Sprintf("%s = %s: %s (limit %s)", e.Field, e.Value, e.Reason, e.Limit)
	}
	return fmt.Sprintf("%s = %s: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsConfigurationError reports whether err stems from the tax tables
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidationError reports whether err stems from caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
