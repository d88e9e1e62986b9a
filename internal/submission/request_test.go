package submission

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/investment-form/internal/fields"
)

func completeState() fields.State {
	return fields.State{
		fields.PurchaseDate:            "2025-01-01",
		fields.TotalPrice:              100000000.0,
		fields.LandPrice:               40000000.0,
		fields.BuildingPrice:           60000000.0,
		fields.PurchaseExpenses:        8000000.0,
		fields.BuildingAge:             10.0,
		fields.Structure:               "重量鉄骨造(S)",
		fields.GrossYield:              8.0,
		fields.CurrentYield:            8.0,
		fields.VacancyRate:             5.0,
		fields.RentDeclineRate:         1.0,
		fields.AnnualOperatingExpenses: 560000.0,
		fields.OwnCapital:              18000000.0,
		fields.LoanAmount:              90000000.0,
		fields.LoanTermYears:           35.0,
		fields.InterestRate:            2.5,
		fields.LoanType:                "元利均等",
		fields.ExpectedRateOfReturn:    5.0,
		fields.ExpectedSaleYear:        "2055-01-01",
		fields.ExpectedSalePrice:       60000000.0,
		fields.SaleExpenses:            2400000.0,
		fields.OwnerType:               "個人",
		fields.AnnualIncome:            10000000.0,
	}
}

func TestToWireConvertsPercentagesOnly(t *testing.T) {
	state := completeState()
	wire := ToWire(fields.Default(), state)

	tests := []struct {
		field    string
		expected any
	}{
		{fields.GrossYield, 0.08},
		{fields.CurrentYield, 0.08},
		{fields.VacancyRate, 0.05},
		{fields.RentDeclineRate, 0.01},
		{fields.InterestRate, 0.025},
		{fields.ExpectedRateOfReturn, 0.05},
		{fields.TotalPrice, 100000000.0},
		{fields.LoanTermYears, 35.0},
		{fields.Structure, "重量鉄骨造(S)"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := wire[tt.field]
			if f, ok := got.(float64); ok {
				if math.Abs(f-tt.expected.(float64)) > 1e-12 {
					t.Errorf("wire[%s] = %v, expected %v", tt.field, got, tt.expected)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("wire[%s] = %v, expected %v", tt.field, got, tt.expected)
			}
		})
	}

	if state[fields.GrossYield] != 8.0 {
		t.Errorf("ToWire mutated the form state: %v", state[fields.GrossYield])
	}
}

func TestToWireSkipsAbsentPercentages(t *testing.T) {
	wire := ToWire(fields.Default(), fields.State{fields.TotalPrice: 1.0})
	if _, ok := wire[fields.GrossYield]; ok {
		t.Error("absent percentage appeared on the wire")
	}
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(fields.Default(), completeState())
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}
	if req.TotalPrice != 100000000 {
		t.Errorf("TotalPrice = %v", req.TotalPrice)
	}
	if math.Abs(req.InterestRate-0.025) > 1e-12 {
		t.Errorf("InterestRate = %v, expected 0.025", req.InterestRate)
	}
	if req.LoanType != "元利均等" || req.OwnerType != "個人" {
		t.Errorf("enum fields not copied: %+v", req)
	}
	if req.ExpectedSaleYear != "2055-01-01" {
		t.Errorf("ExpectedSaleYear = %s", req.ExpectedSaleYear)
	}
}

func TestNewRequestMissingFields(t *testing.T) {
	state := completeState()
	delete(state, fields.TotalPrice)
	delete(state, fields.AnnualIncome)

	_, err := NewRequest(fields.Default(), state)
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 2 || missing.Fields[0] != fields.TotalPrice || missing.Fields[1] != fields.AnnualIncome {
		t.Errorf("missing fields = %v", missing.Fields)
	}
}

func TestNewRequestInvalidValue(t *testing.T) {
	state := completeState()
	state[fields.Structure] = "段ボール造"

	_, err := NewRequest(fields.Default(), state)
	var invalid *fields.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalid.Field != fields.Structure {
		t.Errorf("error names %s, expected structure", invalid.Field)
	}
}
