package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/iwvelando/investment-form/pkg/datetime"
	"github.com/iwvelando/investment-form/pkg/mathutil"
)

var numberNoise = strings.NewReplacer(",", "", "，", "", "¥", "", "￥", "", "円", "", "%", "", "％", "", " ", "", "　", "")

// Coerce converts raw input for name into its stored representation:
// float64 for numeric kinds, a trimmed string otherwise. Blank input yields
// nil (unset). Grouping commas, yen signs and percent signs are ignored.
func (c *Catalog) Coerce(name string, raw any) (any, error) {
	d, ok := c.byName[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	if raw == nil {
		return nil, nil
	}
	if d.Kind.Numeric() {
		return coerceNumber(name, raw)
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if d.Kind == Date {
		// Month pickers submit "2025-04"; store the canonical day form.
		if normalized, err := datetime.NormalizeDate(s); err == nil {
			return normalized, nil
		}
	}
	return s, nil
}

func coerceNumber(name string, raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return nil, &NonNumericInputError{Field: name, Input: v.String()}
		}
		f = parsed
	case string:
		cleaned := numberNoise.Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, &NonNumericInputError{Field: name, Input: v}
		}
		f = parsed
	default:
		return nil, &NonNumericInputError{Field: name, Input: fmt.Sprint(raw)}
	}
	if !mathutil.IsFinite(f) {
		return nil, &NonNumericInputError{Field: name, Input: fmt.Sprint(raw)}
	}
	return f, nil
}

// Validate checks a stored value against the field's constraints. A nil
// value is always valid; Missing reports required fields separately.
func (c *Catalog) Validate(name string, value any) error {
	d, ok := c.byName[name]
	if !ok {
		return &UnknownFieldError{Name: name}
	}
	if value == nil {
		return nil
	}

	switch d.Kind {
	case Currency, Percentage, Integer:
		f, isNum := value.(float64)
		if !isNum {
			return &InvalidValueError{Field: name, Value: value, Reason: "expected a number"}
		}
		if f < 0 {
			return &InvalidValueError{Field: name, Value: value, Reason: "must not be negative"}
		}
		if d.Kind == Integer && f != math.Trunc(f) {
			return &InvalidValueError{Field: name, Value: value, Reason: "must be a whole number"}
		}
	case Date:
		s, isStr := value.(string)
		if !isStr {
			return &InvalidValueError{Field: name, Value: value, Reason: "expected a date"}
		}
		if _, err := datetime.ParseDate(s); err != nil {
			return &InvalidValueError{Field: name, Value: value, Reason: "expected YYYY-MM-DD"}
		}
	case Enum:
		s, isStr := value.(string)
		if !isStr || !slices.Contains(d.Options, s) {
			return &InvalidValueError{Field: name, Value: value, Reason: "not one of " + strings.Join(d.Options, ", ")}
		}
	}
	return nil
}

// ValidateState validates every value in state and returns the first error
// per field, in declaration order.
func (c *Catalog) ValidateState(state State) []error {
	var errs []error
	for _, name := range c.order {
		if v, ok := state[name]; ok {
			if err := c.Validate(name, v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for name := range state {
		if !c.Has(name) {
			errs = append(errs, &UnknownFieldError{Name: name})
		}
	}
	return errs
}
