package storage

import "github.com/jin0205/sourdough-pro-ai/internal/domain"

const legacyDefaultFlour = "Bread Flour"

// normalizeRecipe upgrades a stored recipe in place so the rest of the
// application only ever sees the current shape. Single-flour snapshots
// from old data become a one-entry blend at 100%; the stored row itself
// is never rewritten.
func normalizeRecipe(r *domain.SavedRecipe) {
	normalizeSnapshot(&r.RecipeSnapshot)
	if r.History == nil {
		r.History = []domain.RecipeSnapshot{}
	}
	for i := range r.History {
		normalizeSnapshot(&r.History[i])
	}
}

func normalizeSnapshot(s *domain.RecipeSnapshot) {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Ingredients == nil {
		s.Ingredients = []domain.Ingredient{}
	}
	if len(s.Flours) > 0 {
		return
	}

	name := s.BaseFlourName
	if name == "" {
		name = legacyDefaultFlour
	}
	s.Flours = []domain.Ingredient{{
		ID:          1,
		Name:        name,
		Percentage:  100,
		CostPerKg:   s.BaseFlourCostPerKg,
		InventoryID: s.BaseFlourInventoryID,
	}}
}
