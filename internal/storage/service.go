package storage

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/inventory"
	"github.com/jin0205/sourdough-pro-ai/internal/logger"
)

// Service wraps a Store with the application rules that span collections:
// recipe versioning, legacy migration on read, planner resynchronization
// and stock intake.
type Service struct {
	store domain.Store
	log   *logger.Logger

	// Overridable in tests.
	now   func() time.Time
	newID func() string
}

func NewService(store domain.Store, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Recipes returns all saved recipes, migrated to the current shape.
func (s *Service) Recipes(ctx context.Context) ([]domain.SavedRecipe, error) {
	recipes, err := s.store.Recipes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		normalizeRecipe(&recipes[i])
	}
	return recipes, nil
}

// Recipe returns a single recipe by id.
func (s *Service) Recipe(ctx context.Context, id string) (domain.SavedRecipe, error) {
	recipes, err := s.Recipes(ctx)
	if err != nil {
		return domain.SavedRecipe{}, err
	}
	for _, r := range recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.SavedRecipe{}, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
}

// SaveRecipe persists a snapshot under the given name. With an empty id a
// new recipe is created at version 1. With an existing id the version is
// bumped and the pre-save snapshot is prepended to the history, so
// History[0] is always the state being replaced.
func (s *Service) SaveRecipe(ctx context.Context, id, name string, snap domain.RecipeSnapshot) (domain.SavedRecipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedRecipe{}, domain.ErrUnnamedRecipe
	}

	recipes, err := s.Recipes(ctx)
	if err != nil {
		return domain.SavedRecipe{}, err
	}

	snap.Date = s.now().Format("2006-01-02")

	if id == "" {
		snap.Version = 1
		rec := domain.SavedRecipe{
			RecipeSnapshot: snap,
			ID:             s.newID(),
			Name:           name,
			History:        []domain.RecipeSnapshot{},
		}
		recipes = append(recipes, rec)
		if err := s.store.SaveRecipes(ctx, recipes); err != nil {
			return domain.SavedRecipe{}, err
		}
		s.log.Info("recipe %q created (%s)", name, rec.ID)
		return rec, nil
	}

	for i, existing := range recipes {
		if existing.ID != id {
			continue
		}
		snap.Version = existing.Version + 1
		rec := domain.SavedRecipe{
			RecipeSnapshot: snap,
			ID:             id,
			Name:           name,
			History:        append([]domain.RecipeSnapshot{existing.RecipeSnapshot}, existing.History...),
		}
		recipes[i] = rec
		if err := s.store.SaveRecipes(ctx, recipes); err != nil {
			return domain.SavedRecipe{}, err
		}
		s.log.Info("recipe %q updated to v%d", name, rec.Version)
		return rec, nil
	}

	return domain.SavedRecipe{}, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
}

// SaveCopy saves the snapshot as a brand-new recipe named after the
// original, regardless of where the snapshot came from.
func (s *Service) SaveCopy(ctx context.Context, name string, snap domain.RecipeSnapshot) (domain.SavedRecipe, error) {
	return s.SaveRecipe(ctx, "", strings.TrimSpace(name)+" (Copy)", snap)
}

// DeleteRecipe removes a recipe and drops any planner entries built from
// it.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	recipes, err := s.Recipes(ctx)
	if err != nil {
		return err
	}

	kept := recipes[:0]
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recipes) {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}

	if err := s.store.SaveRecipes(ctx, kept); err != nil {
		return err
	}
	if _, err := s.SyncPlannerItems(ctx); err != nil {
		return err
	}
	s.log.Info("recipe %s deleted", id)
	return nil
}

// SyncPlannerItems reconciles the plan against the recipe list: entries
// whose recipe was deleted are dropped, entries whose recipe moved to a
// newer version get a fresh copy. Counts are kept. The result is only
// persisted when something actually changed, so the call is idempotent.
func (s *Service) SyncPlannerItems(ctx context.Context) ([]domain.PlannerItem, error) {
	recipes, err := s.Recipes(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.PlannerItems(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.SavedRecipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	synced := make([]domain.PlannerItem, 0, len(plan))
	changed := false
	for _, item := range plan {
		current, ok := byID[item.Recipe.ID]
		if !ok {
			s.log.Debug("planner entry %s dropped, recipe %s gone", item.UniqueID, item.Recipe.ID)
			changed = true
			continue
		}
		if current.Version != item.Recipe.Version {
			s.log.Debug("planner entry %s refreshed to v%d", item.UniqueID, current.Version)
			item.Recipe = current
			changed = true
		}
		synced = append(synced, item)
	}

	if changed {
		if err := s.store.SavePlannerItems(ctx, synced); err != nil {
			return nil, err
		}
	}
	return synced, nil
}

// AddToPlan appends a recipe to the production plan. The initial count is
// the recipe's own loaf count.
func (s *Service) AddToPlan(ctx context.Context, recipeID string) (domain.PlannerItem, error) {
	recipe, err := s.Recipe(ctx, recipeID)
	if err != nil {
		return domain.PlannerItem{}, err
	}
	plan, err := s.SyncPlannerItems(ctx)
	if err != nil {
		return domain.PlannerItem{}, err
	}

	item := domain.PlannerItem{
		UniqueID: s.newID(),
		Recipe:   recipe,
		Count:    recipe.NumberOfLoaves,
	}
	if err := s.store.SavePlannerItems(ctx, append(plan, item)); err != nil {
		return domain.PlannerItem{}, err
	}
	return item, nil
}

// UpdatePlanCount sets the loaf count of one planner entry. Invalid
// numbers are stored as zero rather than rejected.
func (s *Service) UpdatePlanCount(ctx context.Context, uniqueID string, count float64) error {
	if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 {
		count = 0
	}

	plan, err := s.store.PlannerItems(ctx)
	if err != nil {
		return err
	}
	for i := range plan {
		if plan[i].UniqueID == uniqueID {
			plan[i].Count = count
			return s.store.SavePlannerItems(ctx, plan)
		}
	}
	return fmt.Errorf("planner entry %s: %w", uniqueID, domain.ErrNotFound)
}

// RemoveFromPlan deletes one planner entry.
func (s *Service) RemoveFromPlan(ctx context.Context, uniqueID string) error {
	plan, err := s.store.PlannerItems(ctx)
	if err != nil {
		return err
	}
	kept := plan[:0]
	for _, item := range plan {
		if item.UniqueID != uniqueID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(plan) {
		return fmt.Errorf("planner entry %s: %w", uniqueID, domain.ErrNotFound)
	}
	return s.store.SavePlannerItems(ctx, kept)
}

// ReplacePlan stores a whole plan at once, used after rescaling.
func (s *Service) ReplacePlan(ctx context.Context, plan []domain.PlannerItem) error {
	return s.store.SavePlannerItems(ctx, plan)
}

// Inventory returns the tracked stock.
func (s *Service) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.store.Inventory(ctx)
}

// ReceiveStock records a new stock line from its packaging details.
func (s *Service) ReceiveStock(ctx context.Context, name string, pkg inventory.Package) (domain.InventoryItem, error) {
	items, err := s.store.Inventory(ctx)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	item := inventory.NewItem(name, pkg, s.now())
	if err := s.store.SaveInventory(ctx, append(items, item)); err != nil {
		return domain.InventoryItem{}, err
	}
	s.log.Info("received %.0fg of %q", item.Quantity, item.Name)
	return item, nil
}

// UpdateStock sets the current quantity of an inventory item in grams.
// Stock levels are never negative; invalid numbers are stored as zero
// rather than rejected.
func (s *Service) UpdateStock(ctx context.Context, id string, grams float64) error {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams < 0 {
		grams = 0
	}

	items, err := s.store.Inventory(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = grams
			items[i].LastUpdated = s.now()
			return s.store.SaveInventory(ctx, items)
		}
	}
	return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
}

// UpdateItemCost sets the price per kilogram of an inventory item.
func (s *Service) UpdateItemCost(ctx context.Context, id string, costPerKg float64) error {
	items, err := s.store.Inventory(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].CostPerKg = costPerKg
			items[i].LastUpdated = s.now()
			return s.store.SaveInventory(ctx, items)
		}
	}
	return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
}

// DeleteInventoryItem removes a stock line. Recipe lines linked to it keep
// their snapshot costs and fall back to those.
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	items, err := s.store.Inventory(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	return s.store.SaveInventory(ctx, kept)
}
