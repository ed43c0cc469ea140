package valuation

import (
	"fmt"
	"math"

	"github.com/iwvelando/dcf-valuation/pkg/mathutil"
)

// Result is the output of one valuation. It is built once and never mutated.
type Result struct {
	WACC                      float64          `json:"wacc" yaml:"wacc"`
	CostOfEquity              float64          `json:"cost_of_equity" yaml:"cost_of_equity"`
	AfterTaxCostOfDebt        float64          `json:"after_tax_cost_of_debt" yaml:"after_tax_cost_of_debt"`
	SumPVFCFF                 float64          `json:"sum_pv_fcff" yaml:"sum_pv_fcff"`
	TerminalValue             float64          `json:"terminal_value" yaml:"terminal_value"`
	PresentValueTerminalValue float64          `json:"present_value_terminal_value" yaml:"present_value_terminal_value"`
	EnterpriseValue           float64          `json:"enterprise_value" yaml:"enterprise_value"`
	EquityValue               float64          `json:"equity_value" yaml:"equity_value"`
	SharePrice                float64          `json:"share_price" yaml:"share_price"`
	Projections               []YearProjection `json:"projections" yaml:"projections"`
	Warnings                  []Warning        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Aggregate discounts each projected year and the terminal value at the WACC,
// sums them into enterprise value and bridges to equity value and share price.
// The projections slice is copied, not modified. Share price is reported as
// computed, including negative values.
func Aggregate(in Input, rate DiscountRate, years []YearProjection) Result {
	projections := make([]YearProjection, len(years))
	copy(projections, years)

	growthFactor := 1 + rate.WACC
	var sumPV float64
	for i := range projections {
		compounding := math.Pow(growthFactor, float64(projections[i].Year))
		projections[i].DiscountFactor = 1 / compounding
		projections[i].PresentValueFCFF = projections[i].FCFF / compounding
		sumPV += projections[i].PresentValueFCFF
	}

	var terminalValue, pvTerminal float64
	if n := len(projections); n > 0 {
		last := projections[n-1]
		terminalValue = last.FCFF * (1 + in.TerminalGrowthRate) / (rate.WACC - in.TerminalGrowthRate)
		pvTerminal = terminalValue / math.Pow(growthFactor, float64(last.Year))
	}

	enterpriseValue := sumPV + pvTerminal
	equityValue := enterpriseValue + in.CashAndEquivalents - in.TotalDebt
	sharePrice := equityValue / in.SharesOutstanding

	result := Result{
		WACC:                      rate.WACC,
		CostOfEquity:              rate.CostOfEquity,
		AfterTaxCostOfDebt:        rate.AfterTaxCostOfDebt,
		SumPVFCFF:                 sumPV,
		TerminalValue:             terminalValue,
		PresentValueTerminalValue: pvTerminal,
		EnterpriseValue:           enterpriseValue,
		EquityValue:               equityValue,
		SharePrice:                sharePrice,
		Projections:               projections,
	}

	if equityValue < 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningNegativeEquityValue,
			Message: fmt.Sprintf("debt exceeds enterprise value plus cash by %.2f", -equityValue),
		})
	}
	if sharePrice < 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningNegativeSharePrice,
			Message: "implied share price is negative, signalling insolvency risk",
		})
	}

	return result
}

// Finite reports whether every number in the result is finite. Extreme but
// valid inputs can overflow float64 during projection.
func (r *Result) Finite() bool {
	if !mathutil.AllFinite(r.WACC, r.CostOfEquity, r.AfterTaxCostOfDebt,
		r.SumPVFCFF, r.TerminalValue, r.PresentValueTerminalValue,
		r.EnterpriseValue, r.EquityValue, r.SharePrice) {
		return false
	}
	for _, y := range r.Projections {
		if !mathutil.AllFinite(y.Revenue, y.OperatingMargin, y.EBIT, y.TaxOnEBIT, y.NOPAT,
			y.Reinvestment, y.FCFF, y.DiscountFactor, y.PresentValueFCFF) {
			return false
		}
	}
	return true
}
