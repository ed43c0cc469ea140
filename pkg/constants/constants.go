// Package constants provides shared constants for the dcf-valuation application.
package constants

// Unit constants
const (
	// RupeesPerCrore converts an amount in crores to absolute rupees
	RupeesPerCrore = 10_000_000

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencySymbol is the symbol printed in front of rupee amounts
	CurrencySymbol = "₹"
)

// Model constants
const (
	// MaxGrowthPeriodYears bounds the explicit forecast horizon
	MaxGrowthPeriodYears = 500

	// MarginTolerance is the tolerance used when comparing operating margins
	MarginTolerance = 1e-9

	// AbsoluteAmountThresholdCrores is the magnitude above which a value entered in
	// crores was almost certainly entered in absolute rupees
	AbsoluteAmountThresholdCrores = 1_000_000_000

	// MarginCompressionWarningPoints is how far, in percentage points, the target
	// margin may sit below the current margin before a warning is raised
	MarginCompressionWarningPoints = 50.0

	// MinPlausibleSharesOutstanding is the share count below which a warning is raised
	MinPlausibleSharesOutstanding = 1_000
)

// Default assumptions for the Indian market, in display units
const (
	DefaultTaxRatePercent            = 25.0
	DefaultGrowthPeriodYears         = 10
	DefaultTerminalGrowthPercent     = 5.0
	DefaultSalesToCapitalRatio       = 1.5
	DefaultRiskFreeRatePercent       = 7.2
	DefaultBeta                      = 1.0
	DefaultEquityRiskPremiumPercent  = 7.0
	DefaultCostOfDebtPercent         = 9.0
	DefaultDebtToCapitalRatioPercent = 20.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8000"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRequestIDHeader carries the per-request correlation ID
	DefaultRequestIDHeader = "X-Request-ID"
)

// Ticker search defaults
const (
	// DefaultTickerBaseURL is the Yahoo Finance query host
	DefaultTickerBaseURL = "https://query2.finance.yahoo.com"

	// DefaultTickerTimeoutSeconds bounds each upstream search call
	DefaultTickerTimeoutSeconds = 10

	// DefaultTickerCacheTTLSeconds is how long suggestions are reused
	DefaultTickerCacheTTLSeconds = 15 * 60

	// MinSuggestQueryLength is the shortest query sent upstream
	MinSuggestQueryLength = 2

	// SuggestQuotesCount is the number of quotes requested for suggestions
	SuggestQuotesCount = 10

	// ResolveQuotesCount is the number of quotes requested for symbol resolution
	ResolveQuotesCount = 5
)
