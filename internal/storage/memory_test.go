package storage

import (
	"context"
	"testing"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	recipes := []domain.SavedRecipe{{ID: "r1", Name: "Country Loaf"}}
	if err := store.SaveRecipes(ctx, recipes); err != nil {
		t.Fatalf("save recipes: %v", err)
	}

	got, err := store.Recipes(ctx)
	if err != nil {
		t.Fatalf("read recipes: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("got %+v", got)
	}

	// The returned slice is a copy; mutating it must not touch the store.
	got[0].Name = "changed"
	again, _ := store.Recipes(ctx)
	if again[0].Name != "Country Loaf" {
		t.Fatalf("store mutated through returned slice: %+v", again)
	}
}

func TestMemoryStoreNotifies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	sub := store.Subscribe()

	if err := store.SaveInventory(ctx, nil); err != nil {
		t.Fatalf("save inventory: %v", err)
	}
	if err := store.SavePlannerItems(ctx, nil); err != nil {
		t.Fatalf("save planner: %v", err)
	}

	if got := <-sub; got != domain.CollectionInventory {
		t.Fatalf("first notification: got %s", got)
	}
	if got := <-sub; got != domain.CollectionPlanner {
		t.Fatalf("second notification: got %s", got)
	}
}

func TestMemoryStoreSlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	store.Subscribe() // never drained

	for i := 0; i < 100; i++ {
		if err := store.SaveRecipes(ctx, nil); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
}

func TestMemoryStoreCloseEndsSubscriptions(t *testing.T) {
	store := NewMemoryStore()
	sub := store.Subscribe()

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-sub; ok {
		t.Fatal("subscription channel still open after Close")
	}

	// Subscribing after Close yields an already-closed channel.
	if _, ok := <-store.Subscribe(); ok {
		t.Fatal("post-Close subscription channel not closed")
	}
}
