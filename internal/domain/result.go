package domain

import (
	"github.com/shopspring/decimal"
)

// DeductionItem is one named deduction or exemption applied to gross income
type DeductionItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SlabContribution records the tax raised inside one slab
type SlabContribution struct {
	Lower         decimal.Decimal  `json:"lower"`
	Upper         *decimal.Decimal `json:"upper"` // nil for the unbounded slab
	RatePercent   decimal.Decimal  `json:"ratePercent"`
	TaxableAmount decimal.Decimal  `json:"taxableAmount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// TaxComputationResult is the derived, never-persisted outcome of one calculation
type TaxComputationResult struct {
	Year     FinancialYear `json:"year"`
	Category Category      `json:"category"`
	Regime   Regime        `json:"regime"`

	GrossIncome     decimal.Decimal    `json:"grossIncome"`
	Deductions      []DeductionItem    `json:"deductions"`
	TotalDeductions decimal.Decimal    `json:"totalDeductions"`
	TaxableIncome   decimal.Decimal    `json:"taxableIncome"`
	Slabs           []SlabContribution `json:"slabs"`

	BaseTax              decimal.Decimal `json:"baseTax"`
	Rebate               decimal.Decimal `json:"rebate"`
	TaxAfterRebate       decimal.Decimal `json:"taxAfterRebate"`
	SurchargeRatePercent decimal.Decimal `json:"surchargeRatePercent"`
	Surcharge            decimal.Decimal `json:"surcharge"`
	CessRatePercent      decimal.Decimal `json:"cessRatePercent"`
	Cess                 decimal.Decimal `json:"cess"`
	FinalTax             decimal.Decimal `json:"finalTax"`
}

// EffectiveRatePercent returns final tax as a percentage of gross income
func (r *TaxComputationResult) EffectiveRatePercent() decimal.Decimal {
	if r.GrossIncome.IsZero() {
		return decimal.Zero
	}
	return r.FinalTax.Div(r.GrossIncome).Mul(decimal.NewFromInt(100))
}

// RegimeComparison pairs the two regime results for one profile
type RegimeComparison struct {
	ProfileName string                `json:"profileName"`
	Year        FinancialYear         `json:"year"`
	Old         *TaxComputationResult `json:"old"`
	New         *TaxComputationResult `json:"new"`
	Recommended Regime                `json:"recommended"`
	Savings     decimal.Decimal       `json:"savings"`
}

// Result returns the computation for the given regime
func (c *RegimeComparison) Result(r Regime) *TaxComputationResult {
	if r == RegimeOld {
		return c.Old
	}
	return c.New
}
