package valuation

import "fmt"

// DiscountRate is the weighted average cost of capital and its components.
type DiscountRate struct {
	CostOfEquity       float64 `json:"cost_of_equity" yaml:"cost_of_equity"`
	AfterTaxCostOfDebt float64 `json:"after_tax_cost_of_debt" yaml:"after_tax_cost_of_debt"`
	WeightEquity       float64 `json:"weight_equity" yaml:"weight_equity"`
	WeightDebt         float64 `json:"weight_debt" yaml:"weight_debt"`
	WACC               float64 `json:"wacc" yaml:"wacc"`
}

// CostOfCapital derives the WACC from CAPM and the target capital structure.
//
// A WACC at or below the terminal growth rate returns a *ModelDivergenceError.
// A non-positive cost of equity is reported as a warning.
func CostOfCapital(in Input) (DiscountRate, []Warning, error) {
	costOfEquity := in.RiskFreeRate + in.Beta*in.EquityRiskPremium
	afterTaxDebt := in.CostOfDebt * (1 - in.TaxRate)
	weightDebt := in.DebtToCapitalRatio
	weightEquity := 1 - weightDebt

	rate := DiscountRate{
		CostOfEquity:       costOfEquity,
		AfterTaxCostOfDebt: afterTaxDebt,
		WeightEquity:       weightEquity,
		WeightDebt:         weightDebt,
		WACC:               weightEquity*costOfEquity + weightDebt*afterTaxDebt,
	}

	var warnings []Warning
	if costOfEquity <= 0 {
		warnings = append(warnings, Warning{
			Code: WarningNonPositiveCostOfEquity,
			Message: fmt.Sprintf("cost of equity is %.6f; risk-free rate, beta and equity risk premium do not describe a risky asset",
				costOfEquity),
		})
	}

	if rate.WACC <= in.TerminalGrowthRate {
		return rate, warnings, &ModelDivergenceError{
			WACC:               rate.WACC,
			TerminalGrowthRate: in.TerminalGrowthRate,
		}
	}

	return rate, warnings, nil
}
