package fields

import "fmt"

// UnknownFieldError is returned for names the catalog does not declare.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// NonNumericInputError is returned when text that is not a number is
// entered into a numeric field.
type NonNumericInputError struct {
	Field string
	Input string
}

func (e *NonNumericInputError) Error() string {
	return fmt.Sprintf("field %s: %q is not a number", e.Field, e.Input)
}

// InvalidValueError is returned by Validate when a value breaks a field
// constraint (enum membership, whole numbers, date layout).
type InvalidValueError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("field %s: invalid value %v: %s", e.Field, e.Value, e.Reason)
}
