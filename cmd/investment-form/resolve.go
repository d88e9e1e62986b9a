package main

import (
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/internal/recalc"
	"github.com/iwvelando/investment-form/internal/seed"
	"github.com/iwvelando/investment-form/pkg/constants"
	"github.com/iwvelando/investment-form/pkg/output"
)

func loadSeed(path string, sample bool) (map[string]any, error) {
	if path == "" && sample {
		return seed.Sample(), nil
	}
	return seed.LoadFile(path)
}

// resolveForm builds a session from raw seed values. Values that cannot be
// coerced are returned as warnings; unknown field names fail.
func resolveForm(raw map[string]any, now time.Time) (*recalc.Session, []error, error) {
	catalog := fields.Default()
	state, problems := seed.Coerce(catalog, raw)
	var warnings []error
	for _, p := range problems {
		if seed.IsUnknownField(p) {
			return nil, nil, p
		}
		warnings = append(warnings, p)
	}

	form, err := recalc.NewSession(recalc.Options{Catalog: catalog, Now: now}, state)
	if err != nil {
		return nil, nil, err
	}
	return form, warnings, nil
}

func printForm(w io.Writer, form *recalc.Session, outputFormat string) error {
	catalog := form.Catalog()
	state := form.State()

	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return output.PrettyFormat(w, output.Rows(catalog, state, form.Edit().ManuallyEdited))
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, output.Rows(catalog, state, form.Edit().ManuallyEdited))
	case constants.OutputFormatYAML:
		return output.YAMLFormat(w, catalog, state)
	}
	return fmt.Errorf("unsupported output format: %s", outputFormat)
}
