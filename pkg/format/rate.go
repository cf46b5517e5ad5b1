// Package format renders unemployment rates for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Rate returns a rate with two decimals (e.g., "12.35"). NaN and infinities
// render as "n/a".
func Rate(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "n/a"
	}
	return printer.Sprintf("%.2f", value)
}
