// Package edit records who set each form value: the user or the
// recalculation engine. It also tracks the last edited field and the field
// that currently holds input focus.
package edit

import (
	"sort"

	"github.com/iwvelando/investment-form/internal/fields"
)

// State is an immutable snapshot of the edit metadata handed to the engine.
type State struct {
	ManuallyEdited   map[string]struct{}
	LastChangedField string
	FocusedField     string
}

// IsOverridable reports whether the engine may write name.
func (s State) IsOverridable(name string) bool {
	_, manual := s.ManuallyEdited[name]
	return !manual
}

// Suspended reports whether a field holds focus.
func (s State) Suspended() bool {
	return s.FocusedField != ""
}

// Manual returns the manually edited fields, sorted.
func (s State) Manual() []string {
	names := make([]string, 0, len(s.ManuallyEdited))
	for name := range s.ManuallyEdited {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tracker accumulates edit metadata for one form session.
type Tracker struct {
	catalog        *fields.Catalog
	manuallyEdited map[string]struct{}
	lastChanged    string
	focused        string
}

// NewTracker returns an empty tracker. A nil catalog uses fields.Default().
func NewTracker(catalog *fields.Catalog) *Tracker {
	if catalog == nil {
		catalog = fields.Default()
	}
	return &Tracker{
		catalog:        catalog,
		manuallyEdited: make(map[string]struct{}),
	}
}

// RecordChange marks name as the last changed field. A direct edit of an
// auto-calculated output pins it for the rest of the session.
func (t *Tracker) RecordChange(name string) {
	t.lastChanged = name
	if t.catalog.IsAutoCalculated(name) {
		t.manuallyEdited[name] = struct{}{}
	}
}

// RecordFocus marks name as the focused field.
func (t *Tracker) RecordFocus(name string) {
	t.focused = name
}

// RecordBlur clears the focused field.
func (t *Tracker) RecordBlur() {
	t.focused = ""
}

// IsOverridable reports whether the engine may still write name.
func (t *Tracker) IsOverridable(name string) bool {
	_, manual := t.manuallyEdited[name]
	return !manual
}

// LastChangedField returns the most recently edited field, or "".
func (t *Tracker) LastChangedField() string {
	return t.lastChanged
}

// FocusedField returns the field holding focus, or "".
func (t *Tracker) FocusedField() string {
	return t.focused
}

// Snapshot copies the tracker's state.
func (t *Tracker) Snapshot() State {
	manual := make(map[string]struct{}, len(t.manuallyEdited))
	for name := range t.manuallyEdited {
		manual[name] = struct{}{}
	}
	return State{
		ManuallyEdited:   manual,
		LastChangedField: t.lastChanged,
		FocusedField:     t.focused,
	}
}
