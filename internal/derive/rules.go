// Package derive holds the formula catalog: the ordered rules that compute
// derived form fields from the price and yield inputs.
package derive

import (
	"github.com/iwvelando/investment-form/internal/edit"
	"github.com/iwvelando/investment-form/internal/fields"
	"github.com/iwvelando/investment-form/pkg/constants"
	"github.com/iwvelando/investment-form/pkg/mathutil"
)

// View is what a rule reads: the stored form state overlaid with the values
// produced by earlier rules in the same pass.
type View struct {
	state fields.State
	patch fields.Patch
}

// NewView overlays patch on state. Neither is modified.
func NewView(state fields.State, patch fields.Patch) View {
	return View{state: state, patch: patch}
}

// Number returns the effective value of name, preferring this pass's output.
func (v View) Number(name string) (float64, bool) {
	if val, ok := v.patch[name]; ok && mathutil.IsFinite(val) {
		return val, true
	}
	return v.state.Number(name)
}

// Populated reports whether the effective value of name is a non-zero number.
func (v View) Populated(name string) bool {
	val, ok := v.Number(name)
	return ok && val != 0
}

// Rule is a pure derivation. Compute is only called when AppliesIf holds.
type Rule struct {
	Name      string
	Inputs    []string
	Outputs   []string
	AppliesIf func(View, edit.State) bool
	Compute   func(View, edit.State) fields.Patch
}

// Rules returns the derivations in evaluation order. Later rules may read
// the outputs of earlier ones through the View.
func Rules() []Rule {
	return []Rule{
		priceDecomposition(),
		ratioOfTotal("purchase-expenses", fields.PurchaseExpenses, constants.PurchaseExpenseRatio),
		ownCapital(),
		ratioOfTotal("loan-amount", fields.LoanAmount, constants.LoanRatio),
		ratioOfTotal("expected-sale-price", fields.ExpectedSalePrice, 1),
		operatingExpenses(),
		saleExpenses(),
	}
}

// priceDecomposition keeps land_price + building_price == total_price.
// Total price is the anchor: editing one component re-derives the other.
// The sum only fills total_price when it is unset and a component was just
// edited, so clearing the total does not bring it straight back.
func priceDecomposition() Rule {
	return Rule{
		Name:    "price-decomposition",
		Inputs:  []string{fields.TotalPrice, fields.LandPrice, fields.BuildingPrice},
		Outputs: []string{fields.TotalPrice, fields.LandPrice, fields.BuildingPrice},
		AppliesIf: func(v View, es edit.State) bool {
			if v.Populated(fields.TotalPrice) {
				return true
			}
			componentEdit := es.LastChangedField == fields.LandPrice || es.LastChangedField == fields.BuildingPrice
			return componentEdit && v.Populated(fields.LandPrice) && v.Populated(fields.BuildingPrice)
		},
		Compute: func(v View, es edit.State) fields.Patch {
			land, hasLand := v.Number(fields.LandPrice)
			building, hasBuilding := v.Number(fields.BuildingPrice)
			hasLand = hasLand && land != 0
			hasBuilding = hasBuilding && building != 0

			total, ok := v.Number(fields.TotalPrice)
			if !ok || total == 0 {
				return fields.Patch{fields.TotalPrice: land + building}
			}

			switch es.LastChangedField {
			case fields.LandPrice:
				if hasLand {
					return fields.Patch{fields.BuildingPrice: total - land}
				}
			case fields.BuildingPrice:
				if hasBuilding {
					return fields.Patch{fields.LandPrice: total - building}
				}
			}

			switch {
			case hasLand && hasBuilding:
				if mathutil.NearlyEqual(land+building, total) {
					return nil
				}
				return fields.Patch{fields.LandPrice: total - building}
			case hasLand:
				return fields.Patch{fields.BuildingPrice: total - land}
			case hasBuilding:
				return fields.Patch{fields.LandPrice: total - building}
			default:
				half := total * constants.PriceSplitRatio
				return fields.Patch{fields.LandPrice: half, fields.BuildingPrice: total - half}
			}
		},
	}
}

func ratioOfTotal(name, output string, ratio float64) Rule {
	return Rule{
		Name:    name,
		Inputs:  []string{fields.TotalPrice},
		Outputs: []string{output},
		AppliesIf: func(v View, es edit.State) bool {
			return v.Populated(fields.TotalPrice) && es.IsOverridable(output)
		},
		Compute: func(v View, _ edit.State) fields.Patch {
			total, _ := v.Number(fields.TotalPrice)
			return fields.Patch{output: total * ratio}
		},
	}
}

func ownCapital() Rule {
	return Rule{
		Name:    "own-capital",
		Inputs:  []string{fields.TotalPrice, fields.PurchaseExpenses},
		Outputs: []string{fields.OwnCapital},
		AppliesIf: func(v View, es edit.State) bool {
			return v.Populated(fields.TotalPrice) && es.IsOverridable(fields.OwnCapital)
		},
		Compute: func(v View, _ edit.State) fields.Patch {
			total, _ := v.Number(fields.TotalPrice)
			expenses, _ := v.Number(fields.PurchaseExpenses)
			return fields.Patch{fields.OwnCapital: total*constants.EquityRatio + expenses}
		},
	}
}

// operatingExpenses is 7% of full-occupancy rent, rounded to whole yen.
func operatingExpenses() Rule {
	return Rule{
		Name:    "annual-operating-expenses",
		Inputs:  []string{fields.TotalPrice, fields.GrossYield},
		Outputs: []string{fields.AnnualOperatingExpenses},
		AppliesIf: func(v View, es edit.State) bool {
			return v.Populated(fields.TotalPrice) &&
				v.Populated(fields.GrossYield) &&
				es.IsOverridable(fields.AnnualOperatingExpenses)
		},
		Compute: func(v View, _ edit.State) fields.Patch {
			total, _ := v.Number(fields.TotalPrice)
			grossYield, _ := v.Number(fields.GrossYield)
			rent := mathutil.ApplyPercentage(total, grossYield)
			return fields.Patch{
				fields.AnnualOperatingExpenses: mathutil.RoundYen(rent * constants.OperatingExpenseRatio),
			}
		},
	}
}

func saleExpenses() Rule {
	return Rule{
		Name:    "sale-expenses",
		Inputs:  []string{fields.ExpectedSalePrice},
		Outputs: []string{fields.SaleExpenses},
		AppliesIf: func(v View, es edit.State) bool {
			return v.Populated(fields.ExpectedSalePrice) && es.IsOverridable(fields.SaleExpenses)
		},
		Compute: func(v View, _ edit.State) fields.Patch {
			price, _ := v.Number(fields.ExpectedSalePrice)
			return fields.Patch{fields.SaleExpenses: price * constants.SaleExpenseRatio}
		},
	}
}
