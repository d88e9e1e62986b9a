// Package output provides utilities for formatting and displaying a resolved form.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/pkg/format"
)

// Row is one displayed field.
type Row struct {
	Name   string
	Label  string
	Value  string
	Source string
}

// Rows lists every field of the catalog in order with its display value.
// Source is "manual" for pinned outputs, "auto" for other derived outputs
// that hold a value, and empty for inputs.
func Rows(catalog *fields.Catalog, state fields.State, manual map[string]struct{}) []Row {
	rows := make([]Row, 0, len(catalog.Names()))
	for _, d := range catalog.Descriptors() {
		row := Row{Name: d.Name, Label: d.Label, Value: displayValue(d, state)}
		if d.AutoCalculated && state.Has(d.Name) {
			row.Source = "auto"
			if _, ok := manual[d.Name]; ok {
				row.Source = "manual"
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func displayValue(d fields.Descriptor, state fields.State) string {
	if !state.Has(d.Name) {
		return ""
	}
	switch d.Kind {
	case fields.Currency:
		if v, ok := state.Number(d.Name); ok {
			return format.Yen(v)
		}
	case fields.Percentage:
		if v, ok := state.Number(d.Name); ok {
			return format.Percent(v)
		}
	case fields.Integer:
		if v, ok := state.Number(d.Name); ok {
			return format.Grouped(v)
		}
	}
	return fmt.Sprint(state[d.Name])
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintf(w, "Field                     | Value              | Source\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "_____                     | _____              | ______\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-25s | %-18s | %s\n", row.Name, row.Value, row.Source); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat writes the rows in comma-separated value format.
func CsvFormat(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "label", "value", "source"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Name, row.Label, row.Value, row.Source}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// YAMLFormat writes the raw form values as a YAML mapping in catalog order,
// suitable as a seed file for a later session.
func YAMLFormat(w io.Writer, catalog *fields.Catalog, state fields.State) error {
	mapNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range catalog.Names() {
		if !state.Has(name) {
			continue
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(state[name]); err != nil {
			return err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mapNode); err != nil {
		return err
	}
	return enc.Close()
}
