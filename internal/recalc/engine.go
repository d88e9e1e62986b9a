// Package recalc keeps the derived form fields consistent. Engine runs one
// deterministic pass of the derivation rules; Session owns a form's state
// and decides when a pass may be applied.
package recalc

import (
	"github.com/iwvelando/investment-form/internal/derive"
	"github.com/iwvelando/investment-form/internal/edit"
	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/pkg/mathutil"
)

// Engine evaluates a fixed, ordered rule set.
type Engine struct {
	rules []derive.Rule
}

// NewEngine returns an engine over rules. Nil rules use derive.Rules().
func NewEngine(rules []derive.Rule) *Engine {
	if rules == nil {
		rules = derive.Rules()
	}
	return &Engine{rules: rules}
}

// Recompute runs one pass with the engine's rules.
func (e *Engine) Recompute(state fields.State, es edit.State) fields.Patch {
	return Recompute(state, es, e.rules)
}

// Recompute evaluates rules in order against state and returns the values
// that differ from state. Each rule sees the outputs of the rules before it.
// Outputs that are manually edited or not finite are dropped. Neither state
// nor es is modified.
func Recompute(state fields.State, es edit.State, rules []derive.Rule) fields.Patch {
	computed := fields.Patch{}
	for _, rule := range rules {
		view := derive.NewView(state, computed)
		if !rule.AppliesIf(view, es) {
			continue
		}
		for name, value := range rule.Compute(view, es) {
			if !mathutil.IsFinite(value) || !es.IsOverridable(name) {
				continue
			}
			computed[name] = value
		}
	}

	patch := fields.Patch{}
	for name, value := range computed {
		if current, ok := state.Number(name); ok && mathutil.NearlyEqual(current, value) {
			continue
		}
		patch[name] = value
	}
	return patch
}
