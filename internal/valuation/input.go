// Package valuation implements the discounted-cash-flow model: input
// normalization, cash-flow projection, cost of capital and present-value
// aggregation.
package valuation

import (
	"math"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
)

// RawInput is an assumption record as decoded from a request or a config file.
// Every field is optional at decode time so that Normalize can name the ones
// that are missing.
type RawInput struct {
	CurrentRevenue        *float64 `json:"current_revenue" yaml:"current_revenue"`
	CurrentEBIT           *float64 `json:"current_ebit" yaml:"current_ebit"`
	CashAndEquivalents    *float64 `json:"cash_and_equivalents" yaml:"cash_and_equivalents"`
	TotalDebt             *float64 `json:"total_debt" yaml:"total_debt"`
	TaxRate               *float64 `json:"tax_rate" yaml:"tax_rate"`
	GrowthPeriodYears     *float64 `json:"growth_period_years" yaml:"growth_period_years"`
	RevenueGrowthRate     *float64 `json:"revenue_growth_rate" yaml:"revenue_growth_rate"`
	TerminalGrowthRate    *float64 `json:"terminal_growth_rate" yaml:"terminal_growth_rate"`
	TargetOperatingMargin *float64 `json:"target_operating_margin" yaml:"target_operating_margin"`
	SalesToCapitalRatio   *float64 `json:"sales_to_capital_ratio" yaml:"sales_to_capital_ratio"`
	RiskFreeRate          *float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	Beta                  *float64 `json:"beta" yaml:"beta"`
	EquityRiskPremium     *float64 `json:"equity_risk_premium" yaml:"equity_risk_premium"`
	CostOfDebt            *float64 `json:"cost_of_debt" yaml:"cost_of_debt"`
	DebtToCapitalRatio    *float64 `json:"debt_to_capital_ratio" yaml:"debt_to_capital_ratio"`
	SharesOutstanding     *float64 `json:"shares_outstanding" yaml:"shares_outstanding"`
}

// Input is the canonical assumption record: money in absolute rupees, rates as
// decimal fractions.
type Input struct {
	CurrentRevenue        float64 `json:"current_revenue" yaml:"current_revenue"`
	CurrentEBIT           float64 `json:"current_ebit" yaml:"current_ebit"`
	CashAndEquivalents    float64 `json:"cash_and_equivalents" yaml:"cash_and_equivalents"`
	TotalDebt             float64 `json:"total_debt" yaml:"total_debt"`
	TaxRate               float64 `json:"tax_rate" yaml:"tax_rate"`
	GrowthPeriodYears     int     `json:"growth_period_years" yaml:"growth_period_years"`
	RevenueGrowthRate     float64 `json:"revenue_growth_rate" yaml:"revenue_growth_rate"`
	TerminalGrowthRate    float64 `json:"terminal_growth_rate" yaml:"terminal_growth_rate"`
	TargetOperatingMargin float64 `json:"target_operating_margin" yaml:"target_operating_margin"`
	SalesToCapitalRatio   float64 `json:"sales_to_capital_ratio" yaml:"sales_to_capital_ratio"`
	RiskFreeRate          float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	Beta                  float64 `json:"beta" yaml:"beta"`
	EquityRiskPremium     float64 `json:"equity_risk_premium" yaml:"equity_risk_premium"`
	CostOfDebt            float64 `json:"cost_of_debt" yaml:"cost_of_debt"`
	DebtToCapitalRatio    float64 `json:"debt_to_capital_ratio" yaml:"debt_to_capital_ratio"`
	SharesOutstanding     float64 `json:"shares_outstanding" yaml:"shares_outstanding"`
}

// Raw converts a canonical Input back into a fully populated RawInput.
func (in Input) Raw() RawInput {
	years := float64(in.GrowthPeriodYears)
	return RawInput{
		CurrentRevenue:        ptr(in.CurrentRevenue),
		CurrentEBIT:           ptr(in.CurrentEBIT),
		CashAndEquivalents:    ptr(in.CashAndEquivalents),
		TotalDebt:             ptr(in.TotalDebt),
		TaxRate:               ptr(in.TaxRate),
		GrowthPeriodYears:     &years,
		RevenueGrowthRate:     ptr(in.RevenueGrowthRate),
		TerminalGrowthRate:    ptr(in.TerminalGrowthRate),
		TargetOperatingMargin: ptr(in.TargetOperatingMargin),
		SalesToCapitalRatio:   ptr(in.SalesToCapitalRatio),
		RiskFreeRate:          ptr(in.RiskFreeRate),
		Beta:                  ptr(in.Beta),
		EquityRiskPremium:     ptr(in.EquityRiskPremium),
		CostOfDebt:            ptr(in.CostOfDebt),
		DebtToCapitalRatio:    ptr(in.DebtToCapitalRatio),
		SharesOutstanding:     ptr(in.SharesOutstanding),
	}
}

// CurrentMargin returns EBIT over revenue for the base year, or zero when
// there is no revenue to divide by.
func (in Input) CurrentMargin() float64 {
	if in.CurrentRevenue == 0 {
		return 0
	}
	return in.CurrentEBIT / in.CurrentRevenue
}

// fieldKind controls which range rule Normalize applies to a field.
type fieldKind int

const (
	kindAmount       fieldKind = iota // >= 0
	kindSignedAmount                  // any finite value
	kindFraction                      // [0, 1]
	kindGrowth                        // (-1, 1]
	kindPositive                      // > 0
	kindReal                          // any finite value
	kindYears                         // integer in [1, MaxGrowthPeriodYears]
)

type field struct {
	name string
	kind fieldKind
	raw  *float64
	dst  *float64
}

// Normalize validates a raw record and returns the canonical Input. Fields are
// checked in a fixed order and the first failure is returned as a
// *ValidationError. Values are never clamped.
func Normalize(raw RawInput) (Input, error) {
	var in Input
	var years float64

	fields := []field{
		{"current_revenue", kindAmount, raw.CurrentRevenue, &in.CurrentRevenue},
		{"current_ebit", kindSignedAmount, raw.CurrentEBIT, &in.CurrentEBIT},
		{"cash_and_equivalents", kindAmount, raw.CashAndEquivalents, &in.CashAndEquivalents},
		{"total_debt", kindAmount, raw.TotalDebt, &in.TotalDebt},
		{"tax_rate", kindFraction, raw.TaxRate, &in.TaxRate},
		{"growth_period_years", kindYears, raw.GrowthPeriodYears, &years},
		{"revenue_growth_rate", kindGrowth, raw.RevenueGrowthRate, &in.RevenueGrowthRate},
		{"terminal_growth_rate", kindFraction, raw.TerminalGrowthRate, &in.TerminalGrowthRate},
		{"target_operating_margin", kindFraction, raw.TargetOperatingMargin, &in.TargetOperatingMargin},
		{"sales_to_capital_ratio", kindPositive, raw.SalesToCapitalRatio, &in.SalesToCapitalRatio},
		{"risk_free_rate", kindFraction, raw.RiskFreeRate, &in.RiskFreeRate},
		{"beta", kindReal, raw.Beta, &in.Beta},
		{"equity_risk_premium", kindFraction, raw.EquityRiskPremium, &in.EquityRiskPremium},
		{"cost_of_debt", kindFraction, raw.CostOfDebt, &in.CostOfDebt},
		{"debt_to_capital_ratio", kindFraction, raw.DebtToCapitalRatio, &in.DebtToCapitalRatio},
		{"shares_outstanding", kindPositive, raw.SharesOutstanding, &in.SharesOutstanding},
	}

	for _, f := range fields {
		if f.raw == nil {
			return Input{}, &ValidationError{Field: f.name, Reason: "is required"}
		}
		v := *f.raw
		if err := checkField(f.name, f.kind, v); err != nil {
			return Input{}, err
		}
		*f.dst = v
	}

	in.GrowthPeriodYears = int(years)
	return in, nil
}

func checkField(name string, kind fieldKind, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: name, Value: v, Reason: "must be a finite number"}
	}

	switch kind {
	case kindAmount:
		if v < 0 {
			return &ValidationError{Field: name, Value: v, Reason: "must not be negative"}
		}
	case kindFraction:
		if v < 0 {
			return &ValidationError{Field: name, Value: v, Reason: "must not be negative"}
		}
		if v > 1 {
			return &ValidationError{Field: name, Value: v, Reason: "must be a decimal fraction no greater than 1 (was a percentage passed?)"}
		}
	case kindGrowth:
		if v <= -1 {
			return &ValidationError{Field: name, Value: v, Reason: "must be greater than -1"}
		}
		if v > 1 {
			return &ValidationError{Field: name, Value: v, Reason: "must be a decimal fraction no greater than 1 (was a percentage passed?)"}
		}
	case kindPositive:
		if v <= 0 {
			return &ValidationError{Field: name, Value: v, Reason: "must be greater than zero"}
		}
	case kindYears:
		if v != math.Trunc(v) {
			return &ValidationError{Field: name, Value: v, Reason: "must be a whole number of years"}
		}
		if v < 1 {
			return &ValidationError{Field: name, Value: v, Reason: "must be at least 1"}
		}
		if v > constants.MaxGrowthPeriodYears {
			return &ValidationError{Field: name, Value: v, Reason: "exceeds the maximum forecast horizon"}
		}
	}
	return nil
}

func ptr(v float64) *float64 {
	return &v
}
