// Package testutil provides common utility functions for testing.
package testutil

import (
	"encoding/json"

	"github.com/iwvelando/dcf-valuation/internal/valuation"
)

// ReferenceInput returns the reference company: ₹10 Cr revenue at a 20%
// margin, 15% growth for ten years toward a 25% margin, valued at a WACC of
// 12.71%.
func ReferenceInput() valuation.Input {
	return valuation.Input{
		CurrentRevenue:        100_000_000,
		CurrentEBIT:           20_000_000,
		CashAndEquivalents:    5_000_000,
		TotalDebt:             10_000_000,
		TaxRate:               0.25,
		GrowthPeriodYears:     10,
		RevenueGrowthRate:     0.15,
		TerminalGrowthRate:    0.05,
		TargetOperatingMargin: 0.25,
		SalesToCapitalRatio:   1.5,
		RiskFreeRate:          0.072,
		Beta:                  1.0,
		EquityRiskPremium:     0.07,
		CostOfDebt:            0.09,
		DebtToCapitalRatio:    0.20,
		SharesOutstanding:     100_000,
	}
}

// ReferenceJSON returns ReferenceInput encoded as a request body.
func ReferenceJSON() []byte {
	body, err := json.Marshal(ReferenceInput().Raw())
	if err != nil {
		panic(err)
	}
	return body
}
