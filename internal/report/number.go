package report

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders v with digit grouping and at most three fraction
// digits. Infinite slopes render as "∞" and NaN as "undefined".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "undefined"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
