package breakeven

import (
	"context"
	"fmt"

	"github.com/nbetharia/itax/internal/calculation"
	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds break-even deductions between the two regimes
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve finds the smallest total of old-regime deductions for which the old
// regime's final tax does not exceed the new regime's for the same gross income.
// Old-regime tax is non-decreasing in taxable income, so the boundary is found by
// bisection between zero and gross income.
func (s *Solver) Solve(ctx context.Context, profile *domain.IncomeProfile, year domain.FinancialYear) (*Result, error) {
	newResult, err := s.CalcEngine.Calculate(profile, year, domain.RegimeNew)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "new regime calculation failed", Cause: err}
	}
	oldResult, err := s.CalcEngine.Calculate(profile, year, domain.RegimeOld)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "old regime calculation failed", Cause: err}
	}
	policy, err := s.CalcEngine.Store.PolicyFor(year, profile.EffectiveCategory(), domain.RegimeOld)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "old regime policy lookup failed", Cause: err}
	}

	tolerance := s.Options.Tolerance
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultSolverOptions().Tolerance
	}
	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}

	gross := profile.GrossIncome()
	target := newResult.FinalTax
	fits := func(taxable decimal.Decimal) bool {
		return calculation.Evaluate(taxable, policy).FinalTax.LessThanOrEqual(target)
	}

	result := &Result{
		ProfileName:       profile.Name,
		Year:              year,
		GrossIncome:       gross,
		NewRegimeTax:      target,
		OldRegimeTax:      oldResult.FinalTax,
		CurrentDeductions: oldResult.TotalDeductions,
	}

	if fits(gross) {
		result.BreakEvenDeductions = decimal.Zero
		result.ConvergenceInfo = "old regime matches the new regime without any deductions"
	} else {
		// invariant: fits(lo) && !fits(hi)
		lo, hi := decimal.Zero, gross
		for hi.Sub(lo).GreaterThan(tolerance) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if result.Iterations >= maxIterations {
				return nil, &BreakEvenError{
					Operation: "solve",
					Message:   fmt.Sprintf("no convergence within %d iterations", maxIterations),
				}
			}

			mid := lo.Add(hi).Div(two).Floor()
			if !mid.GreaterThan(lo) {
				break
			}
			if fits(mid) {
				lo = mid
			} else {
				hi = mid
			}
			result.Iterations++
		}
		result.BreakEvenDeductions = gross.Sub(lo)
		result.ConvergenceInfo = fmt.Sprintf("converged within ₹%s after %d iterations", tolerance.String(), result.Iterations)
	}

	result.AdditionalNeeded = decimal.Max(decimal.Zero, result.BreakEvenDeductions.Sub(result.CurrentDeductions))

	s.CalcEngine.Logger.Debugf("%s %q: break-even deductions=%s current=%s additional=%s",
		year, profile.Name, result.BreakEvenDeductions, result.CurrentDeductions, result.AdditionalNeeded)

	return result, nil
}
