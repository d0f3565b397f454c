// Package costing resolves ingredient prices against inventory and prices
// whole recipes. It is pure: inventory is read-only input, and bad numeric
// input degrades to zero cost rather than an error.
package costing

import (
	"strings"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/formula"
)

// Source tells where a resolved price came from.
type Source string

const (
	// SourceInventory means the price was read from a live inventory item.
	SourceInventory Source = "inventory"
	// SourceManual means the snapshot fallback (or zero) was used.
	SourceManual Source = "manual"
)

// Resolution is the outcome of a cost-per-kg lookup.
type Resolution struct {
	PricePerKg float64
	Source     Source
}

// normalize is the single name-matching rule: trimmed, lowercased.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveCostPerKg finds the $/kg price for a named ingredient. Resolution
// order, first match wins:
//
//  1. explicit inventory link by id,
//  2. case-insensitive (trimmed) name match against inventory,
//  3. the fallback value, tagged manual.
//
// An inventory item with a zero or missing CostPerKg counts as "not found"
// and falls through, so an unpriced stock entry never reports $0 as
// authoritative.
func ResolveCostPerKg(name, inventoryID string, inventory []domain.InventoryItem, fallback float64) Resolution {
	if inventoryID != "" {
		for _, item := range inventory {
			if item.ID == inventoryID && item.CostPerKg > 0 {
				return Resolution{PricePerKg: item.CostPerKg, Source: SourceInventory}
			}
		}
	}

	key := normalize(name)
	if key != "" {
		for _, item := range inventory {
			if normalize(item.Name) == key && item.CostPerKg > 0 {
				return Resolution{PricePerKg: item.CostPerKg, Source: SourceInventory}
			}
		}
	}

	if fallback > 0 {
		return Resolution{PricePerKg: fallback, Source: SourceManual}
	}
	return Resolution{Source: SourceManual}
}

// Coverage classifies how much of a recipe was priced from inventory.
// Display-only; it never feeds back into the math.
type Coverage string

const (
	CoverageFull    Coverage = "full"
	CoveragePartial Coverage = "partial"
	CoverageNone    Coverage = "none"
)

// LineCost is one priced formula line.
type LineCost struct {
	Name          string
	Weight        float64 // grams
	PricePerKg    float64
	Cost          float64
	FromInventory bool
}

// RecipeCost is the full cost breakdown of a recipe snapshot.
type RecipeCost struct {
	Lines       []LineCost
	TotalCost   float64
	CostPerLoaf float64
	Coverage    Coverage
}

// CostRecipe prices every line of a snapshot, flours first then add-ins,
// against the given inventory. CostPerLoaf is zero when the snapshot has
// no loaves.
func CostRecipe(snap domain.RecipeSnapshot, inventory []domain.InventoryItem) RecipeCost {
	totalFlour := formula.TotalFlourWeight(formula.BatchFor(snap), snap.Flours, snap.Ingredients)

	all := make([]domain.Ingredient, 0, len(snap.Flours)+len(snap.Ingredients))
	all = append(all, snap.Flours...)
	all = append(all, snap.Ingredients...)

	out := RecipeCost{Lines: make([]LineCost, 0, len(all))}
	fromInventory := 0
	for _, ing := range all {
		weight := formula.IngredientWeight(totalFlour, ing.Percentage)
		res := ResolveCostPerKg(ing.Name, ing.InventoryID, inventory, ing.CostPerKg)
		line := LineCost{
			Name:          ing.Name,
			Weight:        weight,
			PricePerKg:    res.PricePerKg,
			Cost:          weight / 1000 * res.PricePerKg,
			FromInventory: res.Source == SourceInventory,
		}
		if line.FromInventory {
			fromInventory++
		}
		out.TotalCost += line.Cost
		out.Lines = append(out.Lines, line)
	}

	if snap.NumberOfLoaves > 0 {
		out.CostPerLoaf = out.TotalCost / snap.NumberOfLoaves
	}

	switch {
	case len(out.Lines) > 0 && fromInventory == len(out.Lines):
		out.Coverage = CoverageFull
	case fromInventory > 0:
		out.Coverage = CoveragePartial
	default:
		out.Coverage = CoverageNone
	}
	return out
}
