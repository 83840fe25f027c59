package breakeven

import (
	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions tunes the bisection over taxable income
type SolverOptions struct {
	Tolerance     decimal.Decimal // Stop once the search bracket is this narrow, in rupees
	MaxIterations int             // Maximum solver iterations
}

// DefaultSolverOptions returns options that resolve to the exact rupee
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 64,
	}
}

// Result is the deduction level at which the old regime stops costing more than the new one
type Result struct {
	ProfileName string               `json:"profileName"`
	Year        domain.FinancialYear `json:"year"`
	GrossIncome decimal.Decimal      `json:"grossIncome"`

	NewRegimeTax        decimal.Decimal `json:"newRegimeTax"`
	OldRegimeTax        decimal.Decimal `json:"oldRegimeTax"`
	CurrentDeductions   decimal.Decimal `json:"currentDeductions"`
	BreakEvenDeductions decimal.Decimal `json:"breakEvenDeductions"`
	AdditionalNeeded    decimal.Decimal `json:"additionalNeeded"`

	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`
}

// OldRegimeAhead reports whether the profile's current claims already favour the old regime
func (r *Result) OldRegimeAhead() bool {
	return r.OldRegimeTax.LessThan(r.NewRegimeTax)
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
