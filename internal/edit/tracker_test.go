package edit

import (
	"testing"

	"github.com/iwvelando/investment-form/internal/fields"
)

func TestRecordChange(t *testing.T) {
	tests := []struct {
		name         string
		field        string
		expectManual bool
	}{
		{"Driver field stays overridable", fields.TotalPrice, false},
		{"Component price stays overridable", fields.LandPrice, false},
		{"Purchase expenses pinned", fields.PurchaseExpenses, true},
		{"Own capital pinned", fields.OwnCapital, true},
		{"Loan amount pinned", fields.LoanAmount, true},
		{"Sale price pinned", fields.ExpectedSalePrice, true},
		{"Operating expenses pinned", fields.AnnualOperatingExpenses, true},
		{"Sale expenses pinned", fields.SaleExpenses, true},
		{"Yield stays overridable", fields.GrossYield, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(nil)
			tr.RecordChange(tt.field)

			if tr.LastChangedField() != tt.field {
				t.Errorf("LastChangedField() = %s, expected %s", tr.LastChangedField(), tt.field)
			}
			if got := !tr.IsOverridable(tt.field); got != tt.expectManual {
				t.Errorf("manual(%s) = %v, expected %v", tt.field, got, tt.expectManual)
			}
		})
	}
}

func TestRecordChangeIdempotent(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordChange(fields.PurchaseExpenses)
	tr.RecordChange(fields.PurchaseExpenses)

	snap := tr.Snapshot()
	if len(snap.ManuallyEdited) != 1 {
		t.Errorf("expected one manual field, got %v", snap.Manual())
	}
}

func TestManualSetOnlyGrows(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordChange(fields.LoanAmount)
	tr.RecordChange(fields.TotalPrice)
	tr.RecordFocus(fields.LandPrice)
	tr.RecordBlur()

	if tr.IsOverridable(fields.LoanAmount) {
		t.Error("loan_amount became overridable again")
	}
}

func TestFocusAndBlur(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordFocus(fields.LandPrice)
	if tr.FocusedField() != fields.LandPrice {
		t.Errorf("FocusedField() = %q", tr.FocusedField())
	}
	if !tr.Snapshot().Suspended() {
		t.Error("expected snapshot to be suspended while focused")
	}

	tr.RecordFocus(fields.BuildingPrice)
	if tr.FocusedField() != fields.BuildingPrice {
		t.Errorf("focus did not move: %q", tr.FocusedField())
	}

	tr.RecordBlur()
	if tr.FocusedField() != "" || tr.Snapshot().Suspended() {
		t.Error("expected blur to clear focus")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tr := NewTracker(nil)
	snap := tr.Snapshot()
	tr.RecordChange(fields.SaleExpenses)

	if !snap.IsOverridable(fields.SaleExpenses) {
		t.Error("snapshot observed a later change")
	}
	if tr.Snapshot().IsOverridable(fields.SaleExpenses) {
		t.Error("new snapshot missed the change")
	}
}

func TestManualSorted(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordChange(fields.SaleExpenses)
	tr.RecordChange(fields.LoanAmount)
	got := tr.Snapshot().Manual()
	if len(got) != 2 || got[0] != fields.LoanAmount || got[1] != fields.SaleExpenses {
		t.Errorf("Manual() = %v", got)
	}
}
