package storage

import (
	"context"
	"sync"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

// MemoryStore keeps all collections in memory. Used by tests and the
// -no-db mode; data is gone when the process exits.
type MemoryStore struct {
	mu        sync.RWMutex
	recipes   []domain.SavedRecipe
	inventory []domain.InventoryItem
	planner   []domain.PlannerItem

	notifier
}

var _ domain.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Recipes(ctx context.Context) ([]domain.SavedRecipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.SavedRecipe(nil), m.recipes...), nil
}

func (m *MemoryStore) SaveRecipes(ctx context.Context, recipes []domain.SavedRecipe) error {
	m.mu.Lock()
	m.recipes = append([]domain.SavedRecipe(nil), recipes...)
	m.mu.Unlock()

	m.publish(domain.CollectionRecipes)
	return nil
}

func (m *MemoryStore) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.InventoryItem(nil), m.inventory...), nil
}

func (m *MemoryStore) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	m.mu.Lock()
	m.inventory = append([]domain.InventoryItem(nil), items...)
	m.mu.Unlock()

	m.publish(domain.CollectionInventory)
	return nil
}

func (m *MemoryStore) PlannerItems(ctx context.Context) ([]domain.PlannerItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.PlannerItem(nil), m.planner...), nil
}

func (m *MemoryStore) SavePlannerItems(ctx context.Context, items []domain.PlannerItem) error {
	m.mu.Lock()
	m.planner = append([]domain.PlannerItem(nil), items...)
	m.mu.Unlock()

	m.publish(domain.CollectionPlanner)
	return nil
}

func (m *MemoryStore) Close() error {
	m.shutdown()
	return nil
}
