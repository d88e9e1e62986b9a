// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/investment-form/pkg/constants"
)

const (
	// DateLayout is the format of date fields on the form and on the wire.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a form date. Month-only values ("2025-04") are accepted
// as the first day of that month, which is what month pickers submit.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err == nil {
		return t, nil
	}
	if monthT, monthErr := time.Parse("2006-01", value); monthErr == nil {
		return monthT, nil
	}
	return time.Time{}, err
}

// NormalizeDate returns value in the canonical YYYY-MM-DD layout.
func NormalizeDate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return value, err
	}
	return t.Format(DateLayout), nil
}

// YearsAhead returns January 1st of the year `years` after now's year,
// formatted as a form date.
func YearsAhead(now time.Time, years int) string {
	return time.Date(now.Year()+years, time.January, 1, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}
