// Package fields declares every input of the investment form: its name,
// kind, label, constraints and the defaults a fresh form starts with.
package fields

import (
	"fmt"
	"sort"
)

// Kind classifies how a field's value is typed and validated.
type Kind int

const (
	// Currency is a yen amount.
	Currency Kind = iota
	// Percentage is a 0-100 display percentage.
	Percentage
	// Integer is a whole number such as years.
	Integer
	// Date is a YYYY-MM-DD string.
	Date
	// Enum is a string restricted to Options.
	Enum
)

// String returns the lowercase kind name used in the catalog API.
func (k Kind) String() string {
	switch k {
	case Currency:
		return "currency"
	case Percentage:
		return "percentage"
	case Integer:
		return "integer"
	case Date:
		return "date"
	case Enum:
		return "enum"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{Currency, Percentage, Integer, Date, Enum} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown field kind %q", text)
}

// Numeric reports whether values of this kind are stored as float64.
func (k Kind) Numeric() bool {
	return k == Currency || k == Percentage || k == Integer
}

// Field names.
const (
	PurchaseDate            = "purchase_date"
	TotalPrice              = "total_price"
	LandPrice               = "land_price"
	BuildingPrice           = "building_price"
	PurchaseExpenses        = "purchase_expenses"
	BuildingAge             = "building_age"
	Structure               = "structure"
	GrossYield              = "gross_yield"
	CurrentYield            = "current_yield"
	VacancyRate             = "vacancy_rate"
	RentDeclineRate         = "rent_decline_rate"
	AnnualOperatingExpenses = "annual_operating_expenses"
	OwnCapital              = "own_capital"
	LoanAmount              = "loan_amount"
	LoanTermYears           = "loan_term_years"
	InterestRate            = "interest_rate"
	LoanType                = "loan_type"
	ExpectedRateOfReturn    = "expected_rate_of_return"
	ExpectedSaleYear        = "expected_sale_year"
	ExpectedSalePrice       = "expected_sale_price"
	SaleExpenses            = "sale_expenses"
	OwnerType               = "owner_type"
	AnnualIncome            = "annual_income"
)

// Descriptor is the static declaration of one form field.
type Descriptor struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Formula     string   `json:"formula,omitempty" yaml:"formula,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	// AutoCalculated marks derived outputs. A direct user edit on one of
	// these exempts it from recalculation for the rest of the session.
	AutoCalculated bool `json:"autoCalculated,omitempty" yaml:"autoCalculated,omitempty"`
	// LargeNumber fields display with thousands separators.
	LargeNumber bool `json:"largeNumber,omitempty" yaml:"largeNumber,omitempty"`
}

// Catalog is an immutable, ordered set of field descriptors.
type Catalog struct {
	order  []string
	byName map[string]Descriptor
}

// NewCatalog builds a catalog from descriptors, keeping their order.
// Duplicate names panic: the catalog is static program data.
func NewCatalog(descriptors []Descriptor) *Catalog {
	c := &Catalog{
		order:  make([]string, 0, len(descriptors)),
		byName: make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := c.byName[d.Name]; dup {
			panic("fields: duplicate field " + d.Name)
		}
		d.Options = append([]string(nil), d.Options...)
		c.order = append(c.order, d.Name)
		c.byName[d.Name] = d
	}
	return c
}

var defaultCatalog = NewCatalog(formDescriptors)

// Default returns the investment form catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Describe returns the descriptor for name.
func (c *Catalog) Describe(name string) (Descriptor, error) {
	d, ok := c.byName[name]
	if !ok {
		return Descriptor{}, &UnknownFieldError{Name: name}
	}
	d.Options = append([]string(nil), d.Options...)
	return d, nil
}

// Has reports whether name is a registered field.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns every field name in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Descriptors returns every descriptor in declaration order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, name := range c.order {
		d, _ := c.Describe(name)
		out = append(out, d)
	}
	return out
}

// IsNumeric reports whether name holds a float64 value. Unknown names are not numeric.
func (c *Catalog) IsNumeric(name string) bool {
	d, ok := c.byName[name]
	return ok && d.Kind.Numeric()
}

// IsAutoCalculated reports whether name is a derived output field.
func (c *Catalog) IsAutoCalculated(name string) bool {
	d, ok := c.byName[name]
	return ok && d.AutoCalculated
}

// Percentages returns the names of all percentage fields, sorted.
func (c *Catalog) Percentages() []string {
	return c.namesWhere(func(d Descriptor) bool { return d.Kind == Percentage })
}

// AutoCalculated returns the names of all derived output fields, sorted.
func (c *Catalog) AutoCalculated() []string {
	return c.namesWhere(func(d Descriptor) bool { return d.AutoCalculated })
}

// Missing returns the required fields that have no value in state, in
// declaration order.
func (c *Catalog) Missing(state State) []string {
	var missing []string
	for _, name := range c.order {
		if !c.byName[name].Required {
			continue
		}
		if !state.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (c *Catalog) namesWhere(match func(Descriptor) bool) []string {
	var names []string
	for name, d := range c.byName {
		if match(d) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
