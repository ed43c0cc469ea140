package valuation

import "math"

// YearProjection holds one year of the explicit forecast. The discounting
// fields are zero until the projection has passed through Aggregate.
type YearProjection struct {
	Year             int     `json:"year" yaml:"year"`
	Revenue          float64 `json:"revenue" yaml:"revenue"`
	OperatingMargin  float64 `json:"operating_margin" yaml:"operating_margin"`
	EBIT             float64 `json:"ebit" yaml:"ebit"`
	TaxOnEBIT        float64 `json:"tax_on_ebit" yaml:"tax_on_ebit"`
	NOPAT            float64 `json:"nopat" yaml:"nopat"`
	Reinvestment     float64 `json:"reinvestment" yaml:"reinvestment"`
	FCFF             float64 `json:"fcff" yaml:"fcff"`
	DiscountFactor   float64 `json:"discount_factor" yaml:"discount_factor"`
	PresentValueFCFF float64 `json:"present_value_fcff" yaml:"present_value_fcff"`
}

// Project produces the year-by-year revenue, margin and free cash flow to firm
// over the explicit horizon. The operating margin moves in a straight line
// from the base-year margin and lands exactly on the target in the final year.
func Project(in Input) []YearProjection {
	n := in.GrowthPeriodYears
	if n < 1 {
		return nil
	}

	currentMargin := in.CurrentMargin()
	marginGap := in.TargetOperatingMargin - currentMargin

	years := make([]YearProjection, 0, n)
	prevRevenue := in.CurrentRevenue
	for y := 1; y <= n; y++ {
		margin := in.TargetOperatingMargin
		if y < n {
			margin = currentMargin + marginGap*float64(y)/float64(n)
		}

		revenue := prevRevenue * (1 + in.RevenueGrowthRate)
		ebit := revenue * margin
		// Losses carry no tax credit.
		tax := math.Max(ebit, 0) * in.TaxRate
		nopat := ebit - tax
		// Negative when revenue shrinks: capital is released, not clamped.
		reinvestment := (revenue - prevRevenue) / in.SalesToCapitalRatio

		years = append(years, YearProjection{
			Year:            y,
			Revenue:         revenue,
			OperatingMargin: margin,
			EBIT:            ebit,
			TaxOnEBIT:       tax,
			NOPAT:           nopat,
			Reinvestment:    reinvestment,
			FCFF:            nopat - reinvestment,
		})
		prevRevenue = revenue
	}

	return years
}
