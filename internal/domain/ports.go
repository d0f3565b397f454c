package domain

import "context"

// Collection identifies one of the persisted collections. Store change
// notifications carry the collection that was written.
type Collection string

// Persisted collections. The names double as storage keys and match the
// keys older backups were written under, so restores map one-to-one.
const (
	CollectionRecipes   Collection = "sourdough_recipes"
	CollectionInventory Collection = "sourdough_inventory"
	CollectionPlanner   Collection = "sourdough_planner_items"
)

// Store persists the three shared collections. Implementations can be
// in-memory or SQLite-backed. Every write must fully replace the relevant
// collection and then notify subscribers, so any component holding a live
// view can re-read and re-run planner synchronization.
type Store interface {
	Recipes(ctx context.Context) ([]SavedRecipe, error)
	SaveRecipes(ctx context.Context, recipes []SavedRecipe) error

	Inventory(ctx context.Context) ([]InventoryItem, error)
	SaveInventory(ctx context.Context, items []InventoryItem) error

	PlannerItems(ctx context.Context) ([]PlannerItem, error)
	SavePlannerItems(ctx context.Context, items []PlannerItem) error

	// Subscribe returns a channel that receives the collection name after
	// every successful write. Slow consumers miss notifications rather
	// than block writers.
	Subscribe() <-chan Collection

	Close() error
}

// Extractor is the AI-backed recipe extraction and suggestion collaborator.
// Implementations are external services; the arithmetic core never calls
// them directly.
type Extractor interface {
	// ParseRecipeText turns unstructured recipe text into a candidate
	// recipe with all weights in grams. Failures are typed by kind.
	ParseRecipeText(ctx context.Context, text string) (*ExtractedRecipe, error)

	// SuggestIngredientCost returns a market price estimate in $/kg for a
	// named ingredient.
	SuggestIngredientCost(ctx context.Context, name string) (float64, error)

	// RecipeSuggestions returns free-text advice for a goal against the
	// given formula context. Opaque to the core.
	RecipeSuggestions(ctx context.Context, recipeContext, goal string) (string, error)
}
