// Package formula implements the baker's-percentage formulation engine:
// the invariant-preserving numeric transformations between a flour blend,
// add-in percentages and absolute ingredient weights.
//
// Every function degrades to zero or a no-op on bad input. Nothing here
// returns an error, NaN or Inf; that contract is what the rest of the
// tool is built on.
package formula

import (
	"fmt"
	"math"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

// Batch describes the target batch size, either as loaf count times weight
// per loaf, or as a total target weight in grams. When the loaf form is set
// (either field non-zero) it wins.
type Batch struct {
	NumberOfLoaves    float64
	WeightPerLoaf     float64
	TargetTotalWeight float64
}

// BatchFor is the Batch of a recipe snapshot.
func BatchFor(snap domain.RecipeSnapshot) Batch {
	return Batch{NumberOfLoaves: snap.NumberOfLoaves, WeightPerLoaf: snap.WeightPerLoaf}
}

// TargetWeight returns the target dough weight in grams. Zero loaves or
// zero weight per loaf yields zero, which is a defined outcome, not an
// error.
func (b Batch) TargetWeight() float64 {
	if b.NumberOfLoaves == 0 && b.WeightPerLoaf == 0 {
		return sanitize(b.TargetTotalWeight)
	}
	return sanitize(b.NumberOfLoaves) * sanitize(b.WeightPerLoaf)
}

// sanitize coerces NaN, Inf and negative values to 0. Percentages and
// weights enter the engine through here so garbage never propagates.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// PercentSum sums the sanitized percentages of a list of ingredients.
func PercentSum(items []domain.Ingredient) float64 {
	var sum float64
	for _, it := range items {
		sum += sanitize(it.Percentage)
	}
	return sum
}

// TotalFlourWeight solves for the total flour-base weight in grams.
//
// Add-in percentages are relative to total flour, and flour percentages
// sum to (nominally) 100, so the dough weighs
// totalFlour * (flourPct + addinPct) / 100. Solving for totalFlour from
// the target dough weight treats both pools as one percentage total. A
// non-positive total is guarded and yields 0.
func TotalFlourWeight(batch Batch, flours, addins []domain.Ingredient) float64 {
	formulaPct := PercentSum(flours) + PercentSum(addins)
	if formulaPct <= 0 {
		return 0
	}
	return batch.TargetWeight() / (formulaPct / 100)
}

// IngredientWeight is the absolute weight of one formula line: flour and
// add-in members alike weigh totalFlour * percentage / 100.
func IngredientWeight(totalFlour, percentage float64) float64 {
	return sanitize(totalFlour) * sanitize(percentage) / 100
}

// SolvePercentage inverts IngredientWeight: the percentage that produces
// targetWeight grams at the given total flour weight, rounded to two
// decimals. Returns ok=false (a no-op for the caller) when the total flour
// weight is not positive or the target weight is negative or not a number.
//
// Editing one line's weight this way changes only that line; others are
// never renormalized, so the realized batch weight drifts if used
// repeatedly without rescaling. That is the intended contract.
func SolvePercentage(targetWeight, totalFlour float64) (float64, bool) {
	if totalFlour <= 0 || math.IsNaN(totalFlour) || math.IsInf(totalFlour, 0) {
		return 0, false
	}
	if targetWeight < 0 || math.IsNaN(targetWeight) || math.IsInf(targetWeight, 0) {
		return 0, false
	}
	pct := targetWeight / totalFlour * 100
	return math.Round(pct*100) / 100, true
}

// BatchWeight is the realized dough weight for a total flour weight and
// formula: totalFlour plus every line's absolute weight.
func BatchWeight(totalFlour float64, flours, addins []domain.Ingredient) float64 {
	formulaPct := PercentSum(flours) + PercentSum(addins)
	return sanitize(totalFlour) * formulaPct / 100
}

// BlendUnbalanced reports whether the flour blend's own percentage total
// deviates from 100 by more than a tenth of a percent. Deviation is
// surfaced as a warning, never corrected.
func BlendUnbalanced(flours []domain.Ingredient) bool {
	return math.Abs(PercentSum(flours)-100) > 0.1
}

// Rounding selects how weights are rendered for display. Rounding is
// display-only; it must never feed back into a stored percentage.
type Rounding string

const (
	RoundExact Rounding = "exact"   // one decimal place
	Round1g    Rounding = "round1g" // nearest gram
	Round5g    Rounding = "round5g" // nearest 5 grams
)

// DisplayWeight formats a weight in grams per the rounding mode.
func DisplayWeight(weight float64, mode Rounding) string {
	switch mode {
	case Round1g:
		return fmt.Sprintf("%.0f", math.Round(weight))
	case Round5g:
		return fmt.Sprintf("%.0f", math.Round(weight/5)*5)
	default:
		return fmt.Sprintf("%.1f", weight)
	}
}

// ScaleLoaves scales a loaf count by a factor. Used both for "percentage
// of current" scaling and for hitting a target total weight via
// FactorForTarget.
func ScaleLoaves(currentLoaves, factor float64) float64 {
	return sanitize(currentLoaves) * sanitize(factor)
}

// FactorForTarget is the scale factor that takes the current total weight
// to the target. Returns ok=false when the current total is not positive.
func FactorForTarget(targetWeight, currentTotal float64) (float64, bool) {
	if currentTotal <= 0 || math.IsNaN(currentTotal) || math.IsInf(currentTotal, 0) {
		return 0, false
	}
	return sanitize(targetWeight) / currentTotal, true
}
