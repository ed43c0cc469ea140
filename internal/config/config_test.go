package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/mathutil"
)

const sampleConfig = `
logging:
  level: debug
  format: console
output:
  format: csv
company:
  name: Test Industries
  ticker: TEST.NS
assumptions:
  currentRevenue: 10
  currentEbit: 2
  cashAndEquivalents: 0.5
  totalDebt: 1
  revenueGrowthRate: 15
  targetOperatingMargin: 25
  sharesOutstanding: 100000
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, expected csv", conf.Output.Format)
	}
	if conf.Company.Label() != "Test Industries (TEST.NS)" {
		t.Errorf("Company.Label() = %s", conf.Company.Label())
	}
	if conf.Assumptions.CurrentRevenue == nil || *conf.Assumptions.CurrentRevenue != 10 {
		t.Errorf("CurrentRevenue not loaded: %v", conf.Assumptions.CurrentRevenue)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	a := conf.Assumptions
	defaults := []struct {
		name     string
		got      *float64
		expected float64
	}{
		{"taxRate", a.TaxRate, 25},
		{"growthPeriodYears", a.GrowthPeriodYears, 10},
		{"terminalGrowthRate", a.TerminalGrowthRate, 5},
		{"salesToCapitalRatio", a.SalesToCapitalRatio, 1.5},
		{"riskFreeRate", a.RiskFreeRate, 7.2},
		{"beta", a.Beta, 1},
		{"equityRiskPremium", a.EquityRiskPremium, 7},
		{"costOfDebt", a.CostOfDebt, 9},
		{"debtToCapitalRatio", a.DebtToCapitalRatio, 20},
	}
	for _, d := range defaults {
		if d.got == nil {
			t.Errorf("%s default not applied", d.name)
			continue
		}
		if *d.got != d.expected {
			t.Errorf("%s = %v, expected %v", d.name, *d.got, d.expected)
		}
	}
}

func TestLoadConfigurationMissingCompanyFigures(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("output:\n  format: pretty\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Assumptions.CurrentRevenue != nil {
		t.Errorf("CurrentRevenue should be nil when not supplied")
	}

	_, err = valuation.Compute(conf.Assumptions.ToRawInput())
	if err == nil {
		t.Fatal("expected a validation error for missing company figures")
	}
	if !strings.Contains(err.Error(), "current_revenue") {
		t.Errorf("error %q should name current_revenue", err)
	}
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("assumptions: [unclosed")); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestDefaultAssumptionsValuation(t *testing.T) {
	result, err := valuation.Compute(DefaultAssumptions().ToRawInput())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !mathutil.WithinTolerance(result.WACC, 0.1271, 1e-9) {
		t.Errorf("WACC = %v, expected 0.1271", result.WACC)
	}
	if len(result.Projections) != 10 {
		t.Errorf("expected 10 projections, got %d", len(result.Projections))
	}
	if math.IsNaN(result.SharePrice) || result.SharePrice <= 0 {
		t.Errorf("unexpected share price %v", result.SharePrice)
	}
}

func TestCompanyLabel(t *testing.T) {
	tests := []struct {
		company  Company
		expected string
	}{
		{Company{Name: "Acme", Ticker: "ACME.NS"}, "Acme (ACME.NS)"},
		{Company{Name: "Acme"}, "Acme"},
		{Company{Ticker: "ACME.NS"}, "ACME.NS"},
		{Company{}, ""},
	}
	for _, tt := range tests {
		if got := tt.company.Label(); got != tt.expected {
			t.Errorf("Label() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *Assumptions)
		contains string
	}{
		{
			name:     "Terminal growth above explicit growth",
			mutate:   func(a *Assumptions) { a.TerminalGrowthRate = value(16) },
			contains: "terminal growth rate",
		},
		{
			name:     "Severe margin compression",
			mutate:   func(a *Assumptions) { a.CurrentEBIT = value(8); a.TargetOperatingMargin = value(10) },
			contains: "more than 50 points below",
		},
		{
			name:     "Tiny share count",
			mutate:   func(a *Assumptions) { a.SharesOutstanding = value(10) },
			contains: "unusually small",
		},
		{
			name:     "Revenue entered in rupees",
			mutate:   func(a *Assumptions) { a.CurrentRevenue = value(5_000_000_000) },
			contains: "currentRevenue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Configuration{Assumptions: DefaultAssumptions()}
			tt.mutate(&conf.Assumptions)

			warnings := conf.ValidateConfiguration()
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.contains) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a warning containing %q, got %v", tt.contains, warnings)
			}
		})
	}
}

func TestValidateConfigurationClean(t *testing.T) {
	conf := Configuration{Assumptions: DefaultAssumptions()}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for the default assumptions, got %v", warnings)
	}

	empty := Configuration{}
	if warnings := empty.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for an empty configuration, got %v", warnings)
	}
}
