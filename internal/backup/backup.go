// Package backup exports and restores all collections as a single JSON
// document. The field names match the app's historical backup files, so
// old exports restore cleanly.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

// Bundle is a full snapshot of the persisted state.
type Bundle struct {
	Timestamp time.Time              `json:"timestamp"`
	Recipes   []domain.SavedRecipe   `json:"recipes"`
	Inventory []domain.InventoryItem `json:"inventory"`
	Planner   []domain.PlannerItem   `json:"planner"`
}

// Export reads every collection into a bundle stamped with now.
func Export(ctx context.Context, store domain.Store, now time.Time) (Bundle, error) {
	recipes, err := store.Recipes(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("export recipes: %w", err)
	}
	inventory, err := store.Inventory(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("export inventory: %w", err)
	}
	planner, err := store.PlannerItems(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("export planner: %w", err)
	}

	if recipes == nil {
		recipes = []domain.SavedRecipe{}
	}
	if inventory == nil {
		inventory = []domain.InventoryItem{}
	}
	if planner == nil {
		planner = []domain.PlannerItem{}
	}

	return Bundle{
		Timestamp: now,
		Recipes:   recipes,
		Inventory: inventory,
		Planner:   planner,
	}, nil
}

// Encode renders the bundle as indented JSON for a human-readable file.
func (b Bundle) Encode() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Decode parses and validates backup data. A backup must at least carry a
// recipes array; inventory and planner are optional and default to empty,
// which older exports relied on.
func Decode(data []byte) (Bundle, error) {
	var raw struct {
		Timestamp time.Time               `json:"timestamp"`
		Recipes   *[]domain.SavedRecipe   `json:"recipes"`
		Inventory *[]domain.InventoryItem `json:"inventory"`
		Planner   *[]domain.PlannerItem   `json:"planner"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if raw.Recipes == nil {
		return Bundle{}, fmt.Errorf("%w: missing recipes array", domain.ErrInvalidBackup)
	}

	b := Bundle{
		Timestamp: raw.Timestamp,
		Recipes:   *raw.Recipes,
	}
	if raw.Inventory != nil {
		b.Inventory = *raw.Inventory
	} else {
		b.Inventory = []domain.InventoryItem{}
	}
	if raw.Planner != nil {
		b.Planner = *raw.Planner
	} else {
		b.Planner = []domain.PlannerItem{}
	}
	return b, nil
}

// Import replaces every collection with the bundle's contents. All three
// collections are written even when empty, so subscribers refresh each
// view.
func Import(ctx context.Context, store domain.Store, b Bundle) error {
	if err := store.SaveRecipes(ctx, b.Recipes); err != nil {
		return fmt.Errorf("import recipes: %w", err)
	}
	if err := store.SaveInventory(ctx, b.Inventory); err != nil {
		return fmt.Errorf("import inventory: %w", err)
	}
	if err := store.SavePlannerItems(ctx, b.Planner); err != nil {
		return fmt.Errorf("import planner: %w", err)
	}
	return nil
}

// FileName is the conventional name for a backup written on the given
// day.
func FileName(now time.Time) string {
	return "sourdough_backup_" + now.Format("2006-01-02") + ".json"
}
