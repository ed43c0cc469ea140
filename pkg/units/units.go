// Package units converts between the display units people type (crores and
// whole percentages) and the canonical units the valuation model uses
// (absolute rupees and decimal fractions).
//
// Conversions run in decimal arithmetic so that, for example, 7.2 percent
// becomes exactly the float64 nearest to 0.072.
package units

import (
	"math"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	croreFactor   = decimal.NewFromInt(constants.RupeesPerCrore)
	percentFactor = decimal.NewFromFloat(constants.PercentageMultiplier)
)

// CroresToRupees converts an amount in crores to absolute rupees.
func CroresToRupees(crores float64) float64 {
	if !finite(crores) {
		return crores
	}
	return decimal.NewFromFloat(crores).Mul(croreFactor).InexactFloat64()
}

// RupeesToCrores converts an absolute rupee amount to crores.
func RupeesToCrores(rupees float64) float64 {
	if !finite(rupees) {
		return rupees
	}
	return decimal.NewFromFloat(rupees).DivRound(croreFactor, 16).InexactFloat64()
}

// PercentToFraction converts a whole percentage (7.2) to a fraction (0.072).
func PercentToFraction(percent float64) float64 {
	if !finite(percent) {
		return percent
	}
	return decimal.NewFromFloat(percent).DivRound(percentFactor, 16).InexactFloat64()
}

// FractionToPercent converts a fraction (0.072) to a whole percentage (7.2).
func FractionToPercent(fraction float64) float64 {
	if !finite(fraction) {
		return fraction
	}
	return decimal.NewFromFloat(fraction).Mul(percentFactor).InexactFloat64()
}

// finite guards the decimal constructors, which panic on NaN and infinities.
// Non-finite values pass through unchanged.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
