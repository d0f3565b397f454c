package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/inventory"
	"github.com/jin0205/sourdough-pro-ai/internal/logger"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	svc := NewService(store, logger.New(logger.LevelOff, io.Discard))
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, store
}

func countrySnapshot() domain.RecipeSnapshot {
	return domain.RecipeSnapshot{
		NumberOfLoaves: 2,
		WeightPerLoaf:  900,
		Flours:         []domain.Ingredient{{ID: 1, Name: "Bread Flour", Percentage: 100}},
		Ingredients: []domain.Ingredient{
			{ID: 101, Name: "Water", Percentage: 75},
			{ID: 102, Name: "Salt", Percentage: 2},
		},
	}
}

func TestSaveRecipeCreatesVersionOne(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, err := svc.SaveRecipe(ctx, "", "  Country Loaf ", countrySnapshot())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.ID == "" || rec.Name != "Country Loaf" {
		t.Fatalf("identity: %+v", rec)
	}
	if rec.Version != 1 {
		t.Fatalf("version: got %d, want 1", rec.Version)
	}
	if rec.Date != "2026-09-01" {
		t.Fatalf("date: got %q", rec.Date)
	}
	if len(rec.History) != 0 {
		t.Fatalf("new recipe has history: %+v", rec.History)
	}
}

func TestSaveRecipeVersionsAndHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, err := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		snap := countrySnapshot()
		snap.NumberOfLoaves = float64(3 + i)
		rec, err = svc.SaveRecipe(ctx, rec.ID, "Country Loaf", snap)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	if rec.Version != 4 {
		t.Fatalf("version: got %d, want 4", rec.Version)
	}
	if len(rec.History) != 3 {
		t.Fatalf("history length: got %d, want 3", len(rec.History))
	}
	// History is most recent first; entry 0 is the state the last save
	// replaced.
	if rec.History[0].Version != 3 || rec.History[0].NumberOfLoaves != 4 {
		t.Fatalf("history[0]: %+v", rec.History[0])
	}
	if rec.History[2].Version != 1 || rec.History[2].NumberOfLoaves != 2 {
		t.Fatalf("history[2]: %+v", rec.History[2])
	}
}

func TestSaveRecipeRejectsBlankName(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.SaveRecipe(context.Background(), "", "   ", countrySnapshot()); !errors.Is(err, domain.ErrUnnamedRecipe) {
		t.Fatalf("got %v, want ErrUnnamedRecipe", err)
	}
}

func TestSaveRecipeUnknownID(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.SaveRecipe(context.Background(), "ghost", "Country Loaf", countrySnapshot()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSaveCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	orig, err := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	snap := orig.RecipeSnapshot
	snap.NumberOfLoaves = 10
	clone, err := svc.SaveCopy(ctx, orig.Name, snap)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}

	if clone.ID == orig.ID {
		t.Fatal("copy shares the original's id")
	}
	if clone.Name != "Country Loaf (Copy)" {
		t.Fatalf("copy name: got %q", clone.Name)
	}
	if clone.Version != 1 || len(clone.History) != 0 {
		t.Fatalf("copy is not a fresh version 1: %+v", clone)
	}

	recipes, _ := svc.Recipes(ctx)
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
}

func TestRecipesMigratesLegacySnapshots(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	// A pre-blend recipe as old data would have stored it: no flours
	// array, flour described by the base fields only.
	legacy := domain.SavedRecipe{
		ID:   "old-1",
		Name: "Old Faithful",
		RecipeSnapshot: domain.RecipeSnapshot{
			NumberOfLoaves:       1,
			WeightPerLoaf:        800,
			BaseFlourName:        "Spelt Flour",
			BaseFlourInventoryID: "inv-7",
			BaseFlourCostPerKg:   3.5,
		},
	}
	nameless := domain.SavedRecipe{
		ID:             "old-2",
		Name:           "Unnamed Flour",
		RecipeSnapshot: domain.RecipeSnapshot{NumberOfLoaves: 1, WeightPerLoaf: 500},
	}
	if err := store.SaveRecipes(ctx, []domain.SavedRecipe{legacy, nameless}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	recipes, err := svc.Recipes(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	got := recipes[0]
	if len(got.Flours) != 1 {
		t.Fatalf("flours: %+v", got.Flours)
	}
	flour := got.Flours[0]
	if flour.Name != "Spelt Flour" || flour.Percentage != 100 {
		t.Fatalf("migrated flour: %+v", flour)
	}
	if flour.CostPerKg != 3.5 || flour.InventoryID != "inv-7" {
		t.Fatalf("migrated flour lost cost data: %+v", flour)
	}
	if got.Version != 1 || got.History == nil || got.Ingredients == nil {
		t.Fatalf("defaults not applied: %+v", got)
	}

	if recipes[1].Flours[0].Name != "Bread Flour" {
		t.Fatalf("default flour name: %+v", recipes[1].Flours)
	}
}

func TestAddToPlanUsesRecipeLoafCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, _ := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	item, err := svc.AddToPlan(ctx, rec.ID)
	if err != nil {
		t.Fatalf("add to plan: %v", err)
	}
	if item.Count != 2 {
		t.Fatalf("count: got %v, want 2", item.Count)
	}
	if item.Recipe.ID != rec.ID || item.UniqueID == "" || item.UniqueID == rec.ID {
		t.Fatalf("identity: %+v", item)
	}
}

func TestSyncRefreshesStaleVersions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, _ := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	item, _ := svc.AddToPlan(ctx, rec.ID)
	if err := svc.UpdatePlanCount(ctx, item.UniqueID, 7); err != nil {
		t.Fatalf("update count: %v", err)
	}

	snap := countrySnapshot()
	snap.WeightPerLoaf = 950
	if _, err := svc.SaveRecipe(ctx, rec.ID, "Country Loaf", snap); err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	plan, err := svc.SyncPlannerItems(ctx)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("plan length: %d", len(plan))
	}
	got := plan[0]
	if got.Recipe.Version != 2 || got.Recipe.WeightPerLoaf != 950 {
		t.Fatalf("entry not refreshed: %+v", got.Recipe)
	}
	if got.Count != 7 {
		t.Fatalf("count not kept: %v", got.Count)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	rec, _ := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	if _, err := svc.AddToPlan(ctx, rec.ID); err != nil {
		t.Fatalf("add to plan: %v", err)
	}

	if _, err := svc.SyncPlannerItems(ctx); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	sub := store.Subscribe()
	if _, err := svc.SyncPlannerItems(ctx); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	select {
	case c := <-sub:
		t.Fatalf("in-sync plan was rewritten (%s notification)", c)
	default:
	}
}

func TestDeleteRecipeCascadesToPlan(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	keep, _ := svc.SaveRecipe(ctx, "", "Keeper", countrySnapshot())
	doomed, _ := svc.SaveRecipe(ctx, "", "Doomed", countrySnapshot())
	svc.AddToPlan(ctx, keep.ID)
	svc.AddToPlan(ctx, doomed.ID)

	if err := svc.DeleteRecipe(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	plan, _ := svc.SyncPlannerItems(ctx)
	if len(plan) != 1 || plan[0].Recipe.ID != keep.ID {
		t.Fatalf("plan after delete: %+v", plan)
	}
	if _, err := svc.Recipe(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted recipe still readable: %v", err)
	}
}

func TestUpdatePlanCountCoercesInvalidNumbers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	rec, _ := svc.SaveRecipe(ctx, "", "Country Loaf", countrySnapshot())
	item, _ := svc.AddToPlan(ctx, rec.ID)

	if err := svc.UpdatePlanCount(ctx, item.UniqueID, math.NaN()); err != nil {
		t.Fatalf("update: %v", err)
	}
	plan, _ := svc.SyncPlannerItems(ctx)
	if plan[0].Count != 0 {
		t.Fatalf("count: got %v, want 0", plan[0].Count)
	}
}

func TestUpdateStockNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, err := svc.ReceiveStock(ctx, "Bread Flour", inventory.Package{
		Weight: 25, Unit: domain.UnitKilogram, ItemsPerPackage: 1, CostPerPackage: 30,
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	for _, grams := range []float64{-500, math.NaN(), math.Inf(1)} {
		if err := svc.UpdateStock(ctx, item.ID, grams); err != nil {
			t.Fatalf("update with %v: %v", grams, err)
		}
		items, _ := svc.Inventory(ctx)
		if items[0].Quantity != 0 {
			t.Fatalf("quantity after %v: got %v, want 0", grams, items[0].Quantity)
		}
	}
}

func TestReceiveAndAdjustStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, err := svc.ReceiveStock(ctx, "Bread Flour", inventory.Package{
		Weight: 25, Unit: domain.UnitKilogram, ItemsPerPackage: 1, CostPerPackage: 30,
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if item.Quantity != 25000 {
		t.Fatalf("quantity: got %v", item.Quantity)
	}
	if math.Abs(item.CostPerKg-1.2) > 1e-9 {
		t.Fatalf("cost per kg: got %v", item.CostPerKg)
	}

	if err := svc.UpdateStock(ctx, item.ID, 4000); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if err := svc.UpdateItemCost(ctx, item.ID, 1.5); err != nil {
		t.Fatalf("update cost: %v", err)
	}

	items, _ := svc.Inventory(ctx)
	if items[0].Quantity != 4000 || items[0].CostPerKg != 1.5 {
		t.Fatalf("stock after updates: %+v", items[0])
	}

	if err := svc.DeleteInventoryItem(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ = svc.Inventory(ctx)
	if len(items) != 0 {
		t.Fatalf("inventory not empty: %+v", items)
	}
}
