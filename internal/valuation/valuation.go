package valuation

import (
	"go.uber.org/zap"
)

// Compute runs the full pipeline on a raw record: normalize, project, derive
// the discount rate and aggregate. It returns a *ValidationError for bad input
// and a *ModelDivergenceError when the terminal value is undefined.
func Compute(raw RawInput) (*Result, error) {
	return NewEngine(nil).Calculate(raw)
}

// Engine runs valuations and logs each stage at debug level. An Engine holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Calculate validates raw and values it.
func (e *Engine) Calculate(raw RawInput) (*Result, error) {
	in, err := Normalize(raw)
	if err != nil {
		e.logger.Debug("input rejected",
			zap.String("op", "valuation.Calculate"),
			zap.Error(err),
		)
		return nil, err
	}
	return e.CalculateInput(in)
}

// CalculateInput values an Input that has already been normalized.
func (e *Engine) CalculateInput(in Input) (*Result, error) {
	years := Project(in)
	e.logger.Debug("cash flows projected",
		zap.String("op", "valuation.CalculateInput"),
		zap.Int("years", len(years)),
		zap.Float64("currentMargin", in.CurrentMargin()),
	)

	rate, warnings, err := CostOfCapital(in)
	if err != nil {
		e.logger.Debug("discount rate rejected",
			zap.String("op", "valuation.CalculateInput"),
			zap.Float64("wacc", rate.WACC),
			zap.Float64("terminalGrowthRate", in.TerminalGrowthRate),
			zap.Error(err),
		)
		return nil, err
	}
	e.logger.Debug("discount rate derived",
		zap.String("op", "valuation.CalculateInput"),
		zap.Float64("costOfEquity", rate.CostOfEquity),
		zap.Float64("wacc", rate.WACC),
	)

	result := Aggregate(in, rate, years)
	if len(warnings) > 0 {
		result.Warnings = append(warnings, result.Warnings...)
	}

	for _, w := range result.Warnings {
		e.logger.Debug("valuation warning",
			zap.String("op", "valuation.CalculateInput"),
			zap.String("code", w.Code),
			zap.String("message", w.Message),
		)
	}
	e.logger.Debug("valuation complete",
		zap.String("op", "valuation.CalculateInput"),
		zap.Float64("enterpriseValue", result.EnterpriseValue),
		zap.Float64("equityValue", result.EquityValue),
		zap.Float64("sharePrice", result.SharePrice),
	)

	return &result, nil
}
