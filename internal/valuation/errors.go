package valuation

import "fmt"

// ValidationError reports a malformed or out-of-domain input field.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ModelDivergenceError reports that the discount rate does not exceed the
// terminal growth rate, so the Gordon growth terminal value is undefined.
type ModelDivergenceError struct {
	WACC               float64
	TerminalGrowthRate float64
}

func (e *ModelDivergenceError) Error() string {
	return fmt.Sprintf("terminal value diverges: wacc %.6f must exceed terminal growth rate %.6f",
		e.WACC, e.TerminalGrowthRate)
}

// Warning codes attached to a Result. A warning never stops the computation.
const (
	WarningNonPositiveCostOfEquity = "NON_POSITIVE_COST_OF_EQUITY"
	WarningNegativeEquityValue     = "NEGATIVE_EQUITY_VALUE"
	WarningNegativeSharePrice      = "NEGATIVE_SHARE_PRICE"
)

// Warning is a non-fatal observation about a valuation.
type Warning struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}
