package testutil

import (
	"testing"

	"github.com/iwvelando/investment-form/pkg/output"
)

func TestFindRow(t *testing.T) {
	rows := []output.Row{
		{Name: "total_price", Value: "¥100,000,000"},
		{Name: "land_price", Value: "¥40,000,000"},
		{Name: "purchase_expenses", Value: "¥8,000,000", Source: "auto"},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expected    string
	}{
		{name: "first row", searchName: "total_price", expectFound: true, expected: "¥100,000,000"},
		{name: "derived row", searchName: "purchase_expenses", expectFound: true, expected: "¥8,000,000"},
		{name: "absent row", searchName: "loan_amount"},
		{name: "empty name", searchName: ""},
		{name: "partial name", searchName: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindRow(rows, tt.searchName)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("FindRow() expected nil for %q, got %+v", tt.searchName, found)
				}
				return
			}
			if found == nil {
				t.Fatalf("FindRow() expected to find %q", tt.searchName)
			}
			if found.Value != tt.expected {
				t.Errorf("FindRow() value = %q, expected %q", found.Value, tt.expected)
			}
		})
	}
}

func TestFindRowReturnsPointer(t *testing.T) {
	rows := []output.Row{{Name: "total_price"}}

	found := FindRow(rows, "total_price")
	if found != &rows[0] {
		t.Fatalf("FindRow() should return pointer to original element")
	}

	found.Source = "manual"
	if rows[0].Source != "manual" {
		t.Errorf("Modifying through returned pointer should modify original")
	}
}

func TestFindRowNilRows(t *testing.T) {
	if found := FindRow(nil, "total_price"); found != nil {
		t.Errorf("FindRow() with nil rows should return nil, got %v", found)
	}
}
