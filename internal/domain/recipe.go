// Package domain defines the core types and interfaces for the bakery
// formulation tool. All other packages depend on domain; domain depends
// on nothing.
package domain

import "time"

// Unit is a supported mass unit of measure.
type Unit string

// Supported mass units.
const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitPound    Unit = "lb"
	UnitOunce    Unit = "oz"
)

// Ingredient is a single line of a formula: either a flour-blend member or
// a non-flour add-in. For flour members the percentage is relative to the
// blend's own total (nominally 100); for add-ins it is a classical baker's
// percentage, relative to total flour weight.
type Ingredient struct {
	ID         int     `json:"id" msgpack:"id"`
	Name       string  `json:"name" msgpack:"name"`
	Percentage float64 `json:"percentage" msgpack:"percentage"`

	// CostPerKg is the manual/snapshot fallback price. Zero means unset.
	CostPerKg float64 `json:"costPerKg,omitempty" msgpack:"cost_per_kg,omitempty"`

	// InventoryID links the line to an inventory item. Set when the name
	// matches an inventory item at edit time; empty means unlinked.
	InventoryID string `json:"inventoryId,omitempty" msgpack:"inventory_id,omitempty"`
}

// RecipeSnapshot is an immutable formula at a point in time. The target
// batch weight is NumberOfLoaves times WeightPerLoaf, in grams.
type RecipeSnapshot struct {
	NumberOfLoaves float64 `json:"numberOfLoaves" msgpack:"number_of_loaves"`
	WeightPerLoaf  float64 `json:"weightPerLoaf" msgpack:"weight_per_loaf"`

	// Flours is the flour blend. The percentages nominally sum to 100;
	// deviation is surfaced as a warning, never corrected silently.
	Flours []Ingredient `json:"flours" msgpack:"flours"`

	// Ingredients are the non-flour add-ins (water, salt, levain, ...).
	Ingredients []Ingredient `json:"ingredients" msgpack:"ingredients"`

	Date    string `json:"date" msgpack:"date"`
	Version int    `json:"version" msgpack:"version"`

	// Legacy single-flour fields. Older snapshots carry these instead of a
	// Flours array and are normalized on load. Never written by new code.
	BaseFlourName        string  `json:"baseFlourName,omitempty" msgpack:"base_flour_name,omitempty"`
	BaseFlourInventoryID string  `json:"baseFlourInventoryId,omitempty" msgpack:"base_flour_inventory_id,omitempty"`
	BaseFlourCostPerKg   float64 `json:"baseFlourCostPerKg,omitempty" msgpack:"base_flour_cost_per_kg,omitempty"`
}

// SavedRecipe is a persisted recipe: the live snapshot plus a stable
// identity and its prior versions, most recent first.
type SavedRecipe struct {
	RecipeSnapshot `msgpack:",inline"`

	ID      string           `json:"id" msgpack:"recipe_id"`
	Name    string           `json:"name" msgpack:"recipe_name"`
	History []RecipeSnapshot `json:"history" msgpack:"history"`
}

// PlannerItem is one entry of a production plan. It holds a full copy of
// the recipe snapshot, not a reference: the plan is frozen to the recipe
// version at the time it was added and only refreshed by an explicit sync.
type PlannerItem struct {
	UniqueID string      `json:"uniqueId" msgpack:"unique_id"`
	Recipe   SavedRecipe `json:"recipe" msgpack:"recipe"`
	Count    float64     `json:"count" msgpack:"count"`
}

// InventoryItem is a tracked stock line. Quantity is a running stock level
// in grams, never decremented automatically by planning.
type InventoryItem struct {
	ID          string    `json:"id" msgpack:"id"`
	Name        string    `json:"name" msgpack:"name"`
	Quantity    float64   `json:"quantity" msgpack:"quantity"`
	CostPerKg   float64   `json:"costPerKg,omitempty" msgpack:"cost_per_kg,omitempty"`
	LastUpdated time.Time `json:"lastUpdated" msgpack:"last_updated"`

	// Packaging provenance, used only to compute Quantity and CostPerKg at
	// entry time. Not re-derived later.
	PackageWeight   float64 `json:"packageWeight,omitempty" msgpack:"package_weight,omitempty"`
	PackageUnit     Unit    `json:"packageUnit,omitempty" msgpack:"package_unit,omitempty"`
	ItemsPerPackage float64 `json:"itemsPerPackage,omitempty" msgpack:"items_per_package,omitempty"`
	CostPerPackage  float64 `json:"costPerPackage,omitempty" msgpack:"cost_per_package,omitempty"`
}

// ExtractedIngredient is one ingredient as returned by the extraction
// collaborator, weight already normalized to grams.
type ExtractedIngredient struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// ExtractedRecipe is the candidate recipe structure returned by the
// extraction collaborator. It still needs flour classification before it
// can become a RecipeSnapshot.
type ExtractedRecipe struct {
	Name           string                `json:"name"`
	NumberOfLoaves float64               `json:"numberOfLoaves"`
	WeightPerLoaf  float64               `json:"weightPerLoaf"`
	Ingredients    []ExtractedIngredient `json:"ingredients"`
}
