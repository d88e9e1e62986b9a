package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/investment-form/internal/fields"
)

func strPtr(s string) *string { return &s }

func TestExtractionRaw(t *testing.T) {
	ex := Extraction{
		TotalPrice:    strPtr("35000000"),
		LandPrice:     strPtr("18000000"),
		BuildingPrice: nil,
		Structure:     strPtr("鉄筋コンクリート造(RC)"),
		GrossYield:    strPtr("6.8"),
	}
	raw := ex.Raw()
	if len(raw) != 4 {
		t.Fatalf("expected 4 raw values, got %v", raw)
	}
	if _, ok := raw[fields.BuildingPrice]; ok {
		t.Error("nil extraction value should be skipped")
	}

	state, problems := Coerce(fields.Default(), raw)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if state[fields.TotalPrice] != 35000000.0 || state[fields.GrossYield] != 6.8 {
		t.Errorf("unexpected state: %v", state)
	}
}

func TestCoerceReportsProblems(t *testing.T) {
	state, problems := Coerce(fields.Default(), map[string]any{
		fields.TotalPrice:    "35,000,000",
		fields.LandPrice:     "unknown",
		"floor_plan":         "2LDK",
		fields.BuildingPrice: "",
	})

	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	unknown := 0
	for _, p := range problems {
		if IsUnknownField(p) {
			unknown++
		}
	}
	if unknown != 1 {
		t.Errorf("expected one unknown-field problem, got %d", unknown)
	}
	if len(state) != 1 || state[fields.TotalPrice] != 35000000.0 {
		t.Errorf("unexpected state: %v", state)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{"YAML", "total_price: 35000000\nstructure: 木造(W)\n", 2, false},
		{"JSON", `{"total_price": "35000000", "gross_yield": 6.8}`, 2, false},
		{"Empty", "   \n", 0, false},
		{"Not a mapping", "- a\n- b\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Decode(strings.NewReader(tt.input))
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(raw) != tt.expected {
				t.Errorf("decoded %d values, expected %d: %v", len(raw), tt.expected, raw)
			}
		})
	}
}

func TestDecodeYAMLIntegersCoerce(t *testing.T) {
	raw, err := Decode(strings.NewReader("total_price: 35000000\nbuilding_age: 15\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, problems := Coerce(fields.Default(), raw)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if state[fields.TotalPrice] != 35000000.0 || state[fields.BuildingAge] != 15.0 {
		t.Errorf("integers not widened: %v", state)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("land_price: \"18,000,000\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	raw, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if raw[fields.LandPrice] != "18,000,000" {
		t.Errorf("unexpected raw seed: %v", raw)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSampleIsCompleteAndValid(t *testing.T) {
	c := fields.Default()
	state, problems := Coerce(c, Sample())
	if len(problems) != 0 {
		t.Fatalf("sample has problems: %v", problems)
	}
	if missing := c.Missing(state); len(missing) != 0 {
		t.Errorf("sample misses required fields: %v", missing)
	}
	if errs := c.ValidateState(state); len(errs) != 0 {
		t.Errorf("sample has invalid values: %v", errs)
	}
}

func TestSampleLeavesDerivedFieldsToRecalculation(t *testing.T) {
	c := fields.Default()
	sample := Sample()
	for _, name := range c.AutoCalculated() {
		if _, ok := sample[name]; ok {
			t.Errorf("sample sets derived field %s, which recalculation would overwrite", name)
		}
	}
}
