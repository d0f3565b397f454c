// Package planner aggregates multiple recipe snapshots into a master
// production list and rescales whole plans. Ingredients are unified across
// recipes by trimmed, case-insensitive name; the first-seen casing is kept
// for display.
package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/jin0205/sourdough-pro-ai/internal/costing"
	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/formula"
)

// Requirement is one aggregated ingredient row: total weight and cost
// across every plan entry that uses it.
type Requirement struct {
	Name   string
	Weight float64 // grams
	Cost   float64
}

// Summary is the aggregated production plan.
type Summary struct {
	// Items holds one row per uniquely-named ingredient, heaviest first.
	Items            []Requirement
	TotalDoughWeight float64
	TotalCost        float64
}

// Weights returns the required grams per ingredient name, for inventory
// reconciliation.
func (s Summary) Weights() map[string]float64 {
	out := make(map[string]float64, len(s.Items))
	for _, it := range s.Items {
		out[it.Name] = it.Weight
	}
	return out
}

// Aggregate sums the ingredient requirements of every plan entry. Each
// entry's batch weight is its requested count times the snapshot's weight
// per loaf; flour and add-in lines are both unified into the shared
// case-insensitive ingredient map. Costs resolve against the given
// inventory with the snapshot value as fallback.
func Aggregate(plan []domain.PlannerItem, inventory []domain.InventoryItem) Summary {
	type bucket struct {
		name   string // first-seen casing
		weight float64
		cost   float64
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	var summary Summary

	add := func(ing domain.Ingredient, totalFlour float64) {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			return
		}
		weight := formula.IngredientWeight(totalFlour, ing.Percentage)
		res := costing.ResolveCostPerKg(name, ing.InventoryID, inventory, ing.CostPerKg)
		cost := weight / 1000 * res.PricePerKg

		key := strings.ToLower(name)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: name}
			buckets[key] = b
			order = append(order, key)
		}
		b.weight += weight
		b.cost += cost
		summary.TotalCost += cost
	}

	for _, item := range plan {
		snap := item.Recipe.RecipeSnapshot
		batchWeight := formula.Batch{
			NumberOfLoaves: item.Count,
			WeightPerLoaf:  snap.WeightPerLoaf,
		}.TargetWeight()
		summary.TotalDoughWeight += batchWeight

		totalFlour := formula.TotalFlourWeight(
			formula.Batch{TargetTotalWeight: batchWeight},
			snap.Flours, snap.Ingredients,
		)

		for _, f := range snap.Flours {
			add(f, totalFlour)
		}
		for _, ing := range snap.Ingredients {
			add(ing, totalFlour)
		}
	}

	summary.Items = make([]Requirement, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		summary.Items = append(summary.Items, Requirement{Name: b.name, Weight: b.weight, Cost: b.cost})
	}
	sort.SliceStable(summary.Items, func(i, j int) bool {
		return summary.Items[i].Weight > summary.Items[j].Weight
	})
	return summary
}

// ScaleMode selects how a plan rescale value is interpreted.
type ScaleMode string

const (
	// ScalePercentage scales every count to value percent of current.
	ScalePercentage ScaleMode = "percentage"
	// ScaleTargetWeight scales every count so the plan's total dough
	// weight hits the value, in grams.
	ScaleTargetWeight ScaleMode = "targetWeight"
)

// TotalDoughWeight is the plan's current total batch weight in grams.
func TotalDoughWeight(plan []domain.PlannerItem) float64 {
	var total float64
	for _, item := range plan {
		total += formula.Batch{NumberOfLoaves: item.Count, WeightPerLoaf: item.Recipe.WeightPerLoaf}.TargetWeight()
	}
	return total
}

// Rescale applies a simultaneous uniform rescale of every entry's count by
// the same factor; it never tries to hit a target through a single recipe.
// Counts are rounded to two decimals. Returns ok=false (and the input
// unchanged) for a non-positive value, an empty plan, or target-weight mode
// with a zero current total.
func Rescale(plan []domain.PlannerItem, mode ScaleMode, value float64) ([]domain.PlannerItem, bool) {
	if len(plan) == 0 || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return plan, false
	}

	var factor float64
	switch mode {
	case ScaleTargetWeight:
		current := TotalDoughWeight(plan)
		f, ok := formula.FactorForTarget(value, current)
		if !ok {
			return plan, false
		}
		factor = f
	default:
		factor = value / 100
	}

	out := make([]domain.PlannerItem, len(plan))
	for i, item := range plan {
		item.Count = math.Round(formula.ScaleLoaves(item.Count, factor)*100) / 100
		out[i] = item
	}
	return out, true
}
