// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/investment-form/pkg/output"
)

// FindRow finds a displayed field by name in the rows slice.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []output.Row, name string) *output.Row {
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i]
		}
	}
	return nil
}
