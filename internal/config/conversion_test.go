package config

import "testing"

func TestToRawInput(t *testing.T) {
	raw := DefaultAssumptions().ToRawInput()

	tests := []struct {
		name     string
		got      *float64
		expected float64
	}{
		{"current_revenue", raw.CurrentRevenue, 100_000_000},
		{"current_ebit", raw.CurrentEBIT, 20_000_000},
		{"cash_and_equivalents", raw.CashAndEquivalents, 5_000_000},
		{"total_debt", raw.TotalDebt, 10_000_000},
		{"tax_rate", raw.TaxRate, 0.25},
		{"growth_period_years", raw.GrowthPeriodYears, 10},
		{"revenue_growth_rate", raw.RevenueGrowthRate, 0.15},
		{"terminal_growth_rate", raw.TerminalGrowthRate, 0.05},
		{"target_operating_margin", raw.TargetOperatingMargin, 0.25},
		{"sales_to_capital_ratio", raw.SalesToCapitalRatio, 1.5},
		{"risk_free_rate", raw.RiskFreeRate, 0.072},
		{"beta", raw.Beta, 1},
		{"equity_risk_premium", raw.EquityRiskPremium, 0.07},
		{"cost_of_debt", raw.CostOfDebt, 0.09},
		{"debt_to_capital_ratio", raw.DebtToCapitalRatio, 0.2},
		{"shares_outstanding", raw.SharesOutstanding, 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == nil {
				t.Fatalf("%s is nil", tt.name)
			}
			if *tt.got != tt.expected {
				t.Errorf("%s = %v, expected %v", tt.name, *tt.got, tt.expected)
			}
		})
	}
}

func TestToRawInputKeepsMissingFields(t *testing.T) {
	a := DefaultAssumptions()
	a.TotalDebt = nil
	a.Beta = nil

	raw := a.ToRawInput()
	if raw.TotalDebt != nil {
		t.Error("TotalDebt should remain nil")
	}
	if raw.Beta != nil {
		t.Error("Beta should remain nil")
	}
}

func TestToRawInputDoesNotAlias(t *testing.T) {
	a := DefaultAssumptions()
	raw := a.ToRawInput()
	*raw.Beta = 2

	if *a.Beta != 1 {
		t.Errorf("modifying the raw input changed the assumptions: beta = %v", *a.Beta)
	}
}
