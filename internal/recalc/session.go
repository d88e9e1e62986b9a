package recalc

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/investment-form/internal/edit"
	"github.com/iwvelando/investment-form/internal/fields"
)

// Phase is the session's position in the recalculation state machine.
type Phase int

const (
	// Idle accepts changes and applies patches immediately.
	Idle Phase = iota
	// Suspended means a field has focus; patches are held until blur.
	Suspended
	// Recomputing is the span between a trigger and the patch being applied.
	Recomputing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Suspended:
		return "suspended"
	case Recomputing:
		return "recomputing"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{Idle, Suspended, Recomputing} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Session owns the state of one form: its values, its edit metadata and
// the recalculation phase. A Session is not safe for concurrent use; the
// caller serializes events the way a UI event loop would.
type Session struct {
	catalog *fields.Catalog
	engine  *Engine
	tracker *edit.Tracker
	state   fields.State
	phase   Phase
	pending fields.Patch
}

// Options configures a Session.
type Options struct {
	Catalog *fields.Catalog
	Engine  *Engine
	// Now dates the form defaults. Zero means time.Now().
	Now time.Time
}

// NewSession creates a form with default values overlaid by seed and runs
// the initial recalculation pass. Seed values must already be coerced (see
// fields.Catalog.Coerce); unknown names are rejected.
func NewSession(opts Options, seed fields.State) (*Session, error) {
	if opts.Catalog == nil {
		opts.Catalog = fields.Default()
	}
	if opts.Engine == nil {
		opts.Engine = NewEngine(nil)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	for name := range seed {
		if !opts.Catalog.Has(name) {
			return nil, &fields.UnknownFieldError{Name: name}
		}
	}

	s := &Session{
		catalog: opts.Catalog,
		engine:  opts.Engine,
		tracker: edit.NewTracker(opts.Catalog),
		state:   fields.Defaults(opts.Now),
	}
	s.state.Merge(seed)
	s.Recalculate()
	return s, nil
}

// Change stores a user edit and runs a pass. While a field has focus the
// pass is only computed and kept pending; the returned patch is nil.
//
// Non-numeric text in a numeric field clears the field and returns a
// *fields.NonNumericInputError alongside the patch; recalculation still runs.
func (s *Session) Change(name string, raw any) (fields.Patch, error) {
	value, err := s.catalog.Coerce(name, raw)
	var nonNumeric *fields.NonNumericInputError
	if err != nil && !errors.As(err, &nonNumeric) {
		return nil, err
	}

	if value == nil {
		delete(s.state, name)
	} else {
		s.state[name] = value
	}
	s.tracker.RecordChange(name)

	return s.run(), err
}

// Focus suspends patch emission until Blur.
func (s *Session) Focus(name string) error {
	if !s.catalog.Has(name) {
		return &fields.UnknownFieldError{Name: name}
	}
	s.tracker.RecordFocus(name)
	s.phase = Suspended
	return nil
}

// Blur ends suspension and applies the corrective patch in one step.
func (s *Session) Blur() fields.Patch {
	s.tracker.RecordBlur()
	if s.phase != Suspended {
		return fields.Patch{}
	}
	s.phase = Idle
	return s.run()
}

// Recalculate runs a pass without a new edit, e.g. after seeding.
func (s *Session) Recalculate() fields.Patch {
	return s.run()
}

func (s *Session) run() fields.Patch {
	es := s.tracker.Snapshot()
	if es.Suspended() {
		s.phase = Suspended
		s.pending = s.engine.Recompute(s.state, es)
		return nil
	}

	s.phase = Recomputing
	patch := s.engine.Recompute(s.state, es)
	s.state.Apply(patch)
	s.pending = nil
	s.phase = Idle
	return patch
}

// State returns a copy of the current values.
func (s *Session) State() fields.State {
	return s.state.Clone()
}

// Edit returns a snapshot of the edit metadata.
func (s *Session) Edit() edit.State {
	return s.tracker.Snapshot()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Pending returns the patch computed while suspended, or nil.
func (s *Session) Pending() fields.Patch {
	if s.pending == nil {
		return nil
	}
	out := make(fields.Patch, len(s.pending))
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}

// Catalog returns the catalog the session validates against.
func (s *Session) Catalog() *fields.Catalog {
	return s.catalog
}
