// Package format renders rupee amounts for people to read.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/iwvelando/dcf-valuation/pkg/units"
)

// Rupees returns a currency string with the rupee sign and Indian digit
// grouping (e.g., "-₹1,23,45,678.90").
func Rupees(amount float64) string {
	formatted := formatIndianGrouping(math.Abs(amount))
	if amount < 0 {
		return "-" + constants.CurrencySymbol + formatted
	}
	return constants.CurrencySymbol + formatted
}

// NumericRupees returns an Indian-grouped amount without a currency symbol
// (e.g., "-1,23,456.00").
func NumericRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + formatIndianGrouping(math.Abs(amount))
}

// Crores renders an absolute rupee amount in crores (e.g., "₹1,234.56 Cr").
func Crores(rupees float64) string {
	return Rupees(units.RupeesToCrores(rupees)) + " Cr"
}

// Percent renders a decimal fraction as a percentage (e.g., "12.71%").
func Percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", units.FractionToPercent(fraction))
}

// formatIndianGrouping groups the last three integer digits, then pairs of
// digits above them: 12345678 becomes 1,23,45,678.
func formatIndianGrouping(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]

		var builder strings.Builder
		for i, digit := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		builder.WriteByte(',')
		builder.WriteString(tail)
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
