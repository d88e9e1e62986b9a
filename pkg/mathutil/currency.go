// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/investment-form/pkg/constants"
)

// RoundYen rounds a value to the nearest whole yen, halves away from zero.
func RoundYen(val float64) float64 {
	return math.Round(val)
}

// NearlyEqual compares two yen amounts with a tolerance relative to their
// magnitude, so that large prices survive float rounding in sums.
func NearlyEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= constants.FloatTolerance*scale
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// ApplyPercentage applies a percentage (0-100) to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentToFraction converts a 0-100 display percentage to a 0-1 fraction.
func PercentToFraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
