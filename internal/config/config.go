// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"math"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for dcf-valuation.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Company     Company       `yaml:"company,omitempty" mapstructure:"company"`
	Assumptions Assumptions   `yaml:"assumptions" mapstructure:"assumptions"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Company identifies the business being valued. It is only used for display.
type Company struct {
	Name   string `yaml:"name,omitempty" mapstructure:"name"`
	Ticker string `yaml:"ticker,omitempty" mapstructure:"ticker"`
}

// Label returns the company name with its ticker, whichever are set.
func (c Company) Label() string {
	switch {
	case c.Name != "" && c.Ticker != "":
		return fmt.Sprintf("%s (%s)", c.Name, c.Ticker)
	case c.Name != "":
		return c.Name
	default:
		return c.Ticker
	}
}

// Assumptions holds the valuation inputs in display units: monetary amounts in
// crores and rates as whole percentages. Growth period, sales-to-capital,
// beta and shares outstanding are unitless. A nil field was not supplied.
type Assumptions struct {
	CurrentRevenue        *float64 `yaml:"currentRevenue" mapstructure:"currentRevenue"`
	CurrentEBIT           *float64 `yaml:"currentEbit" mapstructure:"currentEbit"`
	CashAndEquivalents    *float64 `yaml:"cashAndEquivalents" mapstructure:"cashAndEquivalents"`
	TotalDebt             *float64 `yaml:"totalDebt" mapstructure:"totalDebt"`
	TaxRate               *float64 `yaml:"taxRate" mapstructure:"taxRate"`
	GrowthPeriodYears     *float64 `yaml:"growthPeriodYears" mapstructure:"growthPeriodYears"`
	RevenueGrowthRate     *float64 `yaml:"revenueGrowthRate" mapstructure:"revenueGrowthRate"`
	TerminalGrowthRate    *float64 `yaml:"terminalGrowthRate" mapstructure:"terminalGrowthRate"`
	TargetOperatingMargin *float64 `yaml:"targetOperatingMargin" mapstructure:"targetOperatingMargin"`
	SalesToCapitalRatio   *float64 `yaml:"salesToCapitalRatio" mapstructure:"salesToCapitalRatio"`
	RiskFreeRate          *float64 `yaml:"riskFreeRate" mapstructure:"riskFreeRate"`
	Beta                  *float64 `yaml:"beta" mapstructure:"beta"`
	EquityRiskPremium     *float64 `yaml:"equityRiskPremium" mapstructure:"equityRiskPremium"`
	CostOfDebt            *float64 `yaml:"costOfDebt" mapstructure:"costOfDebt"`
	DebtToCapitalRatio    *float64 `yaml:"debtToCapitalRatio" mapstructure:"debtToCapitalRatio"`
	SharesOutstanding     *float64 `yaml:"sharesOutstanding" mapstructure:"sharesOutstanding"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

// newViper returns a viper instance carrying the market-wide defaults. Company
// specific figures have no default and must come from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("assumptions.taxRate", constants.DefaultTaxRatePercent)
	v.SetDefault("assumptions.growthPeriodYears", constants.DefaultGrowthPeriodYears)
	v.SetDefault("assumptions.terminalGrowthRate", constants.DefaultTerminalGrowthPercent)
	v.SetDefault("assumptions.salesToCapitalRatio", constants.DefaultSalesToCapitalRatio)
	v.SetDefault("assumptions.riskFreeRate", constants.DefaultRiskFreeRatePercent)
	v.SetDefault("assumptions.beta", constants.DefaultBeta)
	v.SetDefault("assumptions.equityRiskPremium", constants.DefaultEquityRiskPremiumPercent)
	v.SetDefault("assumptions.costOfDebt", constants.DefaultCostOfDebtPercent)
	v.SetDefault("assumptions.debtToCapitalRatio", constants.DefaultDebtToCapitalRatioPercent)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors are left to the valuation engine.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	a := c.Assumptions

	if a.TerminalGrowthRate != nil && a.RevenueGrowthRate != nil &&
		*a.TerminalGrowthRate >= *a.RevenueGrowthRate {
		warnings = append(warnings, fmt.Sprintf(
			"terminal growth rate %.2f%% is not below the explicit growth rate %.2f%%",
			*a.TerminalGrowthRate, *a.RevenueGrowthRate))
	}

	if a.CurrentRevenue != nil && a.CurrentEBIT != nil && a.TargetOperatingMargin != nil && *a.CurrentRevenue > 0 {
		currentMargin := *a.CurrentEBIT / *a.CurrentRevenue * constants.PercentageMultiplier
		if currentMargin-*a.TargetOperatingMargin > constants.MarginCompressionWarningPoints {
			warnings = append(warnings, fmt.Sprintf(
				"target operating margin %.2f%% is more than %.0f points below the current margin %.2f%%",
				*a.TargetOperatingMargin, constants.MarginCompressionWarningPoints, currentMargin))
		}
	}

	if a.SharesOutstanding != nil && *a.SharesOutstanding > 0 && *a.SharesOutstanding < constants.MinPlausibleSharesOutstanding {
		warnings = append(warnings, fmt.Sprintf(
			"shares outstanding of %.0f is unusually small; check that it is an absolute count",
			*a.SharesOutstanding))
	}

	amounts := []struct {
		name  string
		value *float64
	}{
		{"currentRevenue", a.CurrentRevenue},
		{"currentEbit", a.CurrentEBIT},
		{"cashAndEquivalents", a.CashAndEquivalents},
		{"totalDebt", a.TotalDebt},
	}
	for _, amount := range amounts {
		if amount.value != nil && math.Abs(*amount.value) > constants.AbsoluteAmountThresholdCrores {
			warnings = append(warnings, fmt.Sprintf(
				"%s of %.0f crores looks like an amount in rupees; amounts are expected in crores",
				amount.name, *amount.value))
		}
	}

	return warnings
}
