package config

import (
	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/iwvelando/dcf-valuation/pkg/units"
)

// ToRawInput converts display-unit assumptions into the canonical record the
// valuation engine accepts. Crores become rupees and percentages become
// fractions; unitless fields pass through. Missing fields stay nil so the
// engine can name them.
func (a Assumptions) ToRawInput() valuation.RawInput {
	return valuation.RawInput{
		CurrentRevenue:        convert(a.CurrentRevenue, units.CroresToRupees),
		CurrentEBIT:           convert(a.CurrentEBIT, units.CroresToRupees),
		CashAndEquivalents:    convert(a.CashAndEquivalents, units.CroresToRupees),
		TotalDebt:             convert(a.TotalDebt, units.CroresToRupees),
		TaxRate:               convert(a.TaxRate, units.PercentToFraction),
		GrowthPeriodYears:     copyValue(a.GrowthPeriodYears),
		RevenueGrowthRate:     convert(a.RevenueGrowthRate, units.PercentToFraction),
		TerminalGrowthRate:    convert(a.TerminalGrowthRate, units.PercentToFraction),
		TargetOperatingMargin: convert(a.TargetOperatingMargin, units.PercentToFraction),
		SalesToCapitalRatio:   copyValue(a.SalesToCapitalRatio),
		RiskFreeRate:          convert(a.RiskFreeRate, units.PercentToFraction),
		Beta:                  copyValue(a.Beta),
		EquityRiskPremium:     convert(a.EquityRiskPremium, units.PercentToFraction),
		CostOfDebt:            convert(a.CostOfDebt, units.PercentToFraction),
		DebtToCapitalRatio:    convert(a.DebtToCapitalRatio, units.PercentToFraction),
		SharesOutstanding:     copyValue(a.SharesOutstanding),
	}
}

// DefaultAssumptions returns a complete reference scenario in display units:
// a ₹10 Cr revenue business at a 20% margin growing 15% a year for ten years
// toward a 25% margin, valued with the market-wide defaults.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		CurrentRevenue:        value(10),
		CurrentEBIT:           value(2),
		CashAndEquivalents:    value(0.5),
		TotalDebt:             value(1),
		TaxRate:               value(constants.DefaultTaxRatePercent),
		GrowthPeriodYears:     value(constants.DefaultGrowthPeriodYears),
		RevenueGrowthRate:     value(15),
		TerminalGrowthRate:    value(constants.DefaultTerminalGrowthPercent),
		TargetOperatingMargin: value(25),
		SalesToCapitalRatio:   value(constants.DefaultSalesToCapitalRatio),
		RiskFreeRate:          value(constants.DefaultRiskFreeRatePercent),
		Beta:                  value(constants.DefaultBeta),
		EquityRiskPremium:     value(constants.DefaultEquityRiskPremiumPercent),
		CostOfDebt:            value(constants.DefaultCostOfDebtPercent),
		DebtToCapitalRatio:    value(constants.DefaultDebtToCapitalRatioPercent),
		SharesOutstanding:     value(100_000),
	}
}

func convert(v *float64, fn func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	return value(fn(*v))
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return value(*v)
}

func value(v float64) *float64 {
	return &v
}
