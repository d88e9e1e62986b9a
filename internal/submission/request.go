// Package submission turns a finished form into a valuation request and
// sends it to the external valuation API.
package submission

import (
	"fmt"
	"strings"

	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/pkg/mathutil"
)

// Request is the valuation API request body. Percentages are fractions.
type Request struct {
	PurchaseDate            string  `json:"purchase_date" yaml:"purchase_date"`
	TotalPrice              float64 `json:"total_price" yaml:"total_price"`
	LandPrice               float64 `json:"land_price" yaml:"land_price"`
	BuildingPrice           float64 `json:"building_price" yaml:"building_price"`
	PurchaseExpenses        float64 `json:"purchase_expenses" yaml:"purchase_expenses"`
	BuildingAge             float64 `json:"building_age" yaml:"building_age"`
	Structure               string  `json:"structure" yaml:"structure"`
	GrossYield              float64 `json:"gross_yield" yaml:"gross_yield"`
	CurrentYield            float64 `json:"current_yield" yaml:"current_yield"`
	VacancyRate             float64 `json:"vacancy_rate" yaml:"vacancy_rate"`
	RentDeclineRate         float64 `json:"rent_decline_rate" yaml:"rent_decline_rate"`
	AnnualOperatingExpenses float64 `json:"annual_operating_expenses" yaml:"annual_operating_expenses"`
	OwnCapital              float64 `json:"own_capital" yaml:"own_capital"`
	LoanAmount              float64 `json:"loan_amount" yaml:"loan_amount"`
	LoanTermYears           float64 `json:"loan_term_years" yaml:"loan_term_years"`
	InterestRate            float64 `json:"interest_rate" yaml:"interest_rate"`
	LoanType                string  `json:"loan_type" yaml:"loan_type"`
	ExpectedRateOfReturn    float64 `json:"expected_rate_of_return" yaml:"expected_rate_of_return"`
	ExpectedSaleYear        string  `json:"expected_sale_year" yaml:"expected_sale_year"`
	ExpectedSalePrice       float64 `json:"expected_sale_price" yaml:"expected_sale_price"`
	SaleExpenses            float64 `json:"sale_expenses" yaml:"sale_expenses"`
	OwnerType               string  `json:"owner_type" yaml:"owner_type"`
	AnnualIncome            float64 `json:"annual_income" yaml:"annual_income"`
}

// MissingFieldsError lists required fields without a value.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ToWire copies state, dividing every percentage field by 100. All other
// values pass through unchanged.
func ToWire(catalog *fields.Catalog, state fields.State) fields.State {
	wire := state.Clone()
	for _, name := range catalog.Percentages() {
		if v, ok := state.Number(name); ok {
			wire[name] = mathutil.PercentToFraction(v)
		}
	}
	return wire
}

// NewRequest validates state and builds the wire request from it.
func NewRequest(catalog *fields.Catalog, state fields.State) (Request, error) {
	if missing := catalog.Missing(state); len(missing) > 0 {
		return Request{}, &MissingFieldsError{Fields: missing}
	}
	if errs := catalog.ValidateState(state); len(errs) > 0 {
		return Request{}, fmt.Errorf("invalid form: %w", errs[0])
	}

	w := ToWire(catalog, state)
	num := func(name string) float64 {
		v, _ := w.Number(name)
		return v
	}

	return Request{
		PurchaseDate:            w.String(fields.PurchaseDate),
		TotalPrice:              num(fields.TotalPrice),
		LandPrice:               num(fields.LandPrice),
		BuildingPrice:           num(fields.BuildingPrice),
		PurchaseExpenses:        num(fields.PurchaseExpenses),
		BuildingAge:             num(fields.BuildingAge),
		Structure:               w.String(fields.Structure),
		GrossYield:              num(fields.GrossYield),
		CurrentYield:            num(fields.CurrentYield),
		VacancyRate:             num(fields.VacancyRate),
		RentDeclineRate:         num(fields.RentDeclineRate),
		AnnualOperatingExpenses: num(fields.AnnualOperatingExpenses),
		OwnCapital:              num(fields.OwnCapital),
		LoanAmount:              num(fields.LoanAmount),
		LoanTermYears:           num(fields.LoanTermYears),
		InterestRate:            num(fields.InterestRate),
		LoanType:                w.String(fields.LoanType),
		ExpectedRateOfReturn:    num(fields.ExpectedRateOfReturn),
		ExpectedSaleYear:        w.String(fields.ExpectedSaleYear),
		ExpectedSalePrice:       num(fields.ExpectedSalePrice),
		SaleExpenses:            num(fields.SaleExpenses),
		OwnerType:               w.String(fields.OwnerType),
		AnnualIncome:            num(fields.AnnualIncome),
	}, nil
}
