package compare

import (
	"encoding/csv"
	"strings"

	"github.com/nbetharia/itax/internal/domain"
)

// CSVFormatter formats batch comparisons as CSV, one row per profile
type CSVFormatter struct{}

// Format generates CSV output for a batch summary
func (cf *CSVFormatter) Format(summary *BatchSummary) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Year",
		"Gross Income",
		"Old Deductions",
		"Old Taxable",
		"Old Tax",
		"New Taxable",
		"New Tax",
		"Recommended",
		"Savings",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, c := range summary.Comparisons {
		if err := writer.Write(cf.formatRow(c)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats one comparison as a CSV row
func (cf *CSVFormatter) formatRow(c *domain.RegimeComparison) []string {
	return []string{
		c.ProfileName,
		string(c.Year),
		c.Old.GrossIncome.String(),
		c.Old.TotalDeductions.String(),
		c.Old.TaxableIncome.String(),
		c.Old.FinalTax.String(),
		c.New.TaxableIncome.String(),
		c.New.FinalTax.String(),
		string(c.Recommended),
		c.Savings.String(),
	}
}
