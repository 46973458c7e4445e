package metrics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Rupees formats an amount with thousands grouping, e.g. ₹1,299.
// Fractional amounts keep two decimals.
func Rupees(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("₹%d", int64(v))
	}
	return printer.Sprintf("₹%.2f", v)
}

// FeeLabel renders a zero fee as "Free".
func FeeLabel(v float64) string {
	if v == 0 {
		return "Free"
	}
	return Rupees(v)
}

// Kg renders a carbon figure with one decimal, e.g. 15.8kg CO₂.
func Kg(v float64) string {
	return printer.Sprintf("%.1fkg CO₂", v)
}
