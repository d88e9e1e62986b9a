// Package seed prepares initial form values supplied from outside the form:
// document extraction results, seed files and the development sample.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iwvelando/investment-form/internal/fields"
)

// Extraction is what the document extraction collaborator returns. Every
// value is text as read from the brochure, or nil when not found.
type Extraction struct {
	TotalPrice    *string `json:"total_price" yaml:"total_price"`
	LandPrice     *string `json:"land_price" yaml:"land_price"`
	BuildingPrice *string `json:"building_price" yaml:"building_price"`
	BuildingAge   *string `json:"building_age" yaml:"building_age"`
	Structure     *string `json:"structure" yaml:"structure"`
	GrossYield    *string `json:"gross_yield" yaml:"gross_yield"`
	CurrentYield  *string `json:"current_yield" yaml:"current_yield"`
}

// Raw returns the extraction as raw seed values, skipping nil entries.
func (e Extraction) Raw() map[string]any {
	raw := make(map[string]any)
	add := func(name string, v *string) {
		if v != nil {
			raw[name] = *v
		}
	}
	add(fields.TotalPrice, e.TotalPrice)
	add(fields.LandPrice, e.LandPrice)
	add(fields.BuildingPrice, e.BuildingPrice)
	add(fields.BuildingAge, e.BuildingAge)
	add(fields.Structure, e.Structure)
	add(fields.GrossYield, e.GrossYield)
	add(fields.CurrentYield, e.CurrentYield)
	return raw
}

// Coerce converts raw seed values into form state. Unknown names and
// non-numeric text are reported and skipped; the remaining values are kept.
func Coerce(catalog *fields.Catalog, raw map[string]any) (fields.State, []error) {
	state := fields.State{}
	var problems []error
	for name, value := range raw {
		coerced, err := catalog.Coerce(name, value)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if coerced != nil {
			state[name] = coerced
		}
	}
	return state, problems
}

// Decode reads raw seed values from YAML or JSON.
func Decode(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	raw := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return raw, nil
}

// LoadFile reads raw seed values from a YAML or JSON file.
func LoadFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// IsUnknownField reports whether a Coerce problem is an unknown field name.
func IsUnknownField(err error) bool {
	var unknown *fields.UnknownFieldError
	return errors.As(err, &unknown)
}

// Sample returns a complete form, in display units, for demos and tests.
func Sample() map[string]any {
	return map[string]any{
		fields.PurchaseDate:         "2025-01-01",
		fields.TotalPrice:           100000000.0,
		fields.LandPrice:            40000000.0,
		fields.BuildingPrice:        60000000.0,
		fields.BuildingAge:          10.0,
		fields.Structure:            "重量鉄骨造(S)",
		fields.GrossYield:           8.0,
		fields.CurrentYield:         8.0,
		fields.VacancyRate:          5.0,
		fields.RentDeclineRate:      1.0,
		fields.LoanTermYears:        35.0,
		fields.InterestRate:         2.5,
		fields.LoanType:             "元利均等",
		fields.ExpectedRateOfReturn: 5.0,
		fields.ExpectedSaleYear:     "2055-01-01",
		fields.OwnerType:            "個人",
		fields.AnnualIncome:         10000000.0,
	}
}
