// Package format renders form values for people.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Yen returns an amount with a yen sign and thousands separators (e.g. "¥1,234,567").
// Fractions are rounded to whole yen for display only.
func Yen(amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-¥" + printer.Sprintf("%.0f", -rounded)
	}
	return "¥" + printer.Sprintf("%.0f", rounded)
}

// Grouped returns a number with thousands separators and no currency symbol,
// the way the form's large-number inputs display it.
func Grouped(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("%.0f", amount)
	}
	return printer.Sprintf("%.2f", amount)
}

// Percent returns a display percentage such as "2.5%".
func Percent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
