package fields

import (
	"errors"
	"testing"
	"time"
)

func TestDescribe(t *testing.T) {
	c := Default()

	d, err := c.Describe(PurchaseExpenses)
	if err != nil {
		t.Fatalf("Describe(%s) returned error: %v", PurchaseExpenses, err)
	}
	if d.Kind != Currency {
		t.Errorf("expected currency kind, got %s", d.Kind)
	}
	if !d.AutoCalculated {
		t.Error("expected purchase_expenses to be auto-calculated")
	}

	_, err = c.Describe("balcony_area")
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if unknown.Name != "balcony_area" {
		t.Errorf("expected error to name balcony_area, got %s", unknown.Name)
	}
}

func TestDescribeReturnsCopy(t *testing.T) {
	c := Default()
	d, _ := c.Describe(LoanType)
	d.Options[0] = "mutated"

	again, _ := c.Describe(LoanType)
	if again.Options[0] != "元利均等" {
		t.Errorf("catalog options were mutated through a descriptor: %v", again.Options)
	}
}

func TestNamesOrder(t *testing.T) {
	names := Default().Names()
	if len(names) != 23 {
		t.Fatalf("expected 23 fields, got %d", len(names))
	}
	if names[0] != PurchaseDate || names[len(names)-1] != AnnualIncome {
		t.Errorf("unexpected order: first %s last %s", names[0], names[len(names)-1])
	}
}

func TestAutoCalculatedSet(t *testing.T) {
	got := Default().AutoCalculated()
	expected := []string{
		AnnualOperatingExpenses,
		ExpectedSalePrice,
		LoanAmount,
		OwnCapital,
		PurchaseExpenses,
		SaleExpenses,
	}
	if len(got) != len(expected) {
		t.Fatalf("AutoCalculated() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("AutoCalculated()[%d] = %s, expected %s", i, got[i], expected[i])
		}
	}
}

func TestPercentages(t *testing.T) {
	got := Default().Percentages()
	expected := []string{CurrentYield, ExpectedRateOfReturn, GrossYield, InterestRate, RentDeclineRate, VacancyRate}
	if len(got) != len(expected) {
		t.Fatalf("Percentages() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Percentages()[%d] = %s, expected %s", i, got[i], expected[i])
		}
	}
}

func TestDuplicateFieldPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected NewCatalog to panic on duplicate names")
		}
	}()
	NewCatalog([]Descriptor{{Name: TotalPrice}, {Name: TotalPrice}})
}

func TestMissing(t *testing.T) {
	c := Default()
	state := Defaults(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	missing := c.Missing(state)

	contains := func(name string) bool {
		for _, m := range missing {
			if m == name {
				return true
			}
		}
		return false
	}

	if !contains(TotalPrice) {
		t.Error("expected total_price to be missing on a fresh form")
	}
	if contains(LoanType) || contains(OwnerType) || contains(ExpectedSaleYear) {
		t.Errorf("defaulted fields reported missing: %v", missing)
	}
	if contains(PurchaseExpenses) {
		t.Error("optional purchase_expenses reported missing")
	}
}

func TestDefaults(t *testing.T) {
	state := Defaults(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		expected any
	}{
		{VacancyRate, 0.05},
		{LoanTermYears, 35.0},
		{RentDeclineRate, 0.01},
		{OwnerType, "個人"},
		{LoanType, "元利均等"},
		{ExpectedRateOfReturn, 0.05},
		{ExpectedSaleYear, "2056-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if state[tt.name] != tt.expected {
				t.Errorf("default %s = %v, expected %v", tt.name, state[tt.name], tt.expected)
			}
		})
	}

	for name := range state {
		if !Default().Has(name) {
			t.Errorf("default %s is not in the catalog", name)
		}
	}
}
