package analysis

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is the precision applied before derived scalars are compared.
const DefaultDecimals = 3

// MaxDecimals bounds the precision; float64 holds about 15 significant digits.
const MaxDecimals = 15

// Round rounds value to the given number of decimal places, half away from zero.
//
// The value is shifted by a decimal exponent rather than multiplied in binary
// floating point, so Round(0.1235, 3) is 0.124 and Round(1.005, 2) is 1.01.
// NaN and infinities are returned unchanged.
func Round(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, _ := decimal.NewFromFloat(value).Round(int32(decimals)).Float64()
	return rounded
}
