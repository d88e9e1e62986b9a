package fields

import (
	"sort"
	"time"

	"github.com/iwvelando/investment-form/pkg/constants"
	"github.com/iwvelando/investment-form/pkg/datetime"
	"github.com/iwvelando/investment-form/pkg/mathutil"
)

// State maps field names to their current value. Numeric fields hold a
// float64, date and enum fields a string. An absent key is an unset field.
type State map[string]any

// Patch is a set of derived numeric values produced by one recalculation pass.
type Patch map[string]float64

// Defaults returns the values a fresh form starts with. The default sale
// date is January 1st thirty years after now.
func Defaults(now time.Time) State {
	return State{
		VacancyRate:          constants.DefaultVacancyRate,
		LoanTermYears:        float64(constants.DefaultLoanTermYears),
		RentDeclineRate:      constants.DefaultRentDeclineRate,
		OwnerType:            constants.DefaultOwnerType,
		LoanType:             constants.DefaultLoanType,
		ExpectedRateOfReturn: constants.DefaultExpectedRateOfReturn,
		ExpectedSaleYear:     datetime.YearsAhead(now, constants.DefaultSaleHorizonYears),
	}
}

// Has reports whether name carries a value.
func (s State) Has(name string) bool {
	v, ok := s[name]
	if !ok || v == nil {
		return false
	}
	if str, isStr := v.(string); isStr {
		return str != ""
	}
	return true
}

// Number returns the numeric value of name. The second result is false when
// the field is absent or not a finite number.
func (s State) Number(name string) (float64, bool) {
	var f float64
	switch v := s[name].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, false
	}
	if !mathutil.IsFinite(f) {
		return 0, false
	}
	return f, true
}

// Populated reports whether name holds a non-zero number. Zero counts as
// "not entered yet" for the price and yield inputs of the derivations.
func (s State) Populated(name string) bool {
	v, ok := s.Number(name)
	return ok && v != 0
}

// String returns the string value of name, or "" when absent or numeric.
func (s State) String(name string) string {
	str, _ := s[name].(string)
	return str
}

// Clone returns a shallow copy; values are immutable scalars.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Apply writes every patch entry into s.
func (s State) Apply(p Patch) {
	for k, v := range p {
		s[k] = v
	}
}

// Merge writes every key of other into s, deleting keys whose value is nil.
func (s State) Merge(other State) {
	for k, v := range other {
		if v == nil {
			delete(s, k)
			continue
		}
		s[k] = v
	}
}

// Names returns the patch's field names, sorted.
func (p Patch) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p) == 0
}
