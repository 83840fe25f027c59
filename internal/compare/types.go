package compare

import (
	"fmt"

	"github.com/nbetharia/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// BatchSummary aggregates regime comparisons across many profiles
type BatchSummary struct {
	Year           domain.FinancialYear       `json:"year"`
	Comparisons    []*domain.RegimeComparison `json:"comparisons"`
	OldRecommended int                        `json:"oldRecommended"`
	NewRecommended int                        `json:"newRecommended"`
	TotalSavings   decimal.Decimal            `json:"totalSavings"`
}

// Summarize builds a BatchSummary from comparisons of the same year
func Summarize(year domain.FinancialYear, comparisons []*domain.RegimeComparison) *BatchSummary {
	summary := &BatchSummary{
		Year:         year,
		Comparisons:  comparisons,
		TotalSavings: decimal.Zero,
	}
	for _, c := range comparisons {
		if c.Recommended == domain.RegimeOld {
			summary.OldRecommended++
		} else {
			summary.NewRecommended++
		}
		summary.TotalSavings = summary.TotalSavings.Add(c.Savings)
	}
	return summary
}

// GenerateRecommendations explains a comparison in plain sentences
func GenerateRecommendations(c *domain.RegimeComparison) []string {
	recommendations := []string{}

	label := regimeLabel(c.Recommended)
	if c.Savings.IsZero() {
		recommendations = append(recommendations,
			"Both regimes result in the same tax; the New regime needs no deduction proofs")
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("The %s Tax Regime is more beneficial: it saves %s", label, c.Savings.StringFixed(0)))
	}

	if c.Recommended == domain.RegimeOld && c.Old != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Old regime relies on %s of deductions; keep supporting documents", c.Old.TotalDeductions.StringFixed(0)))
	}

	if c.New != nil && c.New.Rebate.GreaterThan(decimal.Zero) {
		recommendations = append(recommendations,
			fmt.Sprintf("New regime rebate of %s applies at this income", c.New.Rebate.StringFixed(0)))
	}

	return recommendations
}

func regimeLabel(r domain.Regime) string {
	if r == domain.RegimeOld {
		return "Old"
	}
	return "New"
}
