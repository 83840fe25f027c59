package compare

import (
	"context"
	"fmt"

	"github.com/nbetharia/itax/internal/calculation"
	"github.com/nbetharia/itax/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds CompareAll when the caller passes a non-positive limit
const DefaultWorkers = 4

// CompareEngine runs both regimes for a profile and recommends the cheaper one
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// Compare computes the old and new regime liabilities for the same profile and year.
// The regime with the strictly lower final tax is recommended; a tie favours the
// new regime since it carries no deduction paperwork.
func (ce *CompareEngine) Compare(profile *domain.IncomeProfile, year domain.FinancialYear) (*domain.RegimeComparison, error) {
	oldResult, err := ce.CalcEngine.Calculate(profile, year, domain.RegimeOld)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}
	newResult, err := ce.CalcEngine.Calculate(profile, year, domain.RegimeNew)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}

	comparison := &domain.RegimeComparison{
		ProfileName: profile.Name,
		Year:        year,
		Old:         oldResult,
		New:         newResult,
		Recommended: Recommend(oldResult, newResult),
		Savings:     oldResult.FinalTax.Sub(newResult.FinalTax).Abs(),
	}

	ce.CalcEngine.Logger.Debugf("%s %q: old=%s new=%s recommended=%s savings=%s",
		year, profile.Name, oldResult.FinalTax, newResult.FinalTax, comparison.Recommended, comparison.Savings)

	return comparison, nil
}

// Recommend picks the regime with the strictly lower final tax, new on a tie
func Recommend(oldResult, newResult *domain.TaxComputationResult) domain.Regime {
	if oldResult.FinalTax.LessThan(newResult.FinalTax) {
		return domain.RegimeOld
	}
	return domain.RegimeNew
}

// CompareAll compares many profiles concurrently with at most workers in flight.
// Results keep the input order; the first failure cancels the remaining work.
func (ce *CompareEngine) CompareAll(ctx context.Context, profiles []*domain.IncomeProfile, year domain.FinancialYear, workers int) ([]*domain.RegimeComparison, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]*domain.RegimeComparison, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, profile := range profiles {
		i, profile := i, profile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			comparison, err := ce.Compare(profile, year)
			if err != nil {
				return fmt.Errorf("profile %d (%s): %w", i, profile.Name, err)
			}
			results[i] = comparison
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
