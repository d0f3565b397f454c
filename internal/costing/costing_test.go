package costing

import (
	"math"
	"testing"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

func approx(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, tol)
	}
}

func TestResolveCostPerKgPriority(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "inv-1", Name: "Bread Flour", CostPerKg: 2.00},
		{ID: "inv-2", Name: "Organic Bread Flour", CostPerKg: 3.50},
		{ID: "inv-3", Name: "Rye Flour"}, // unpriced
	}

	tests := []struct {
		name        string
		ingredient  string
		inventoryID string
		fallback    float64
		wantPrice   float64
		wantSource  Source
	}{
		{"link id wins over name match", "Bread Flour", "inv-2", 0, 3.50, SourceInventory},
		{"name match case-insensitive", "bread flour", "", 0, 2.00, SourceInventory},
		{"name match trims whitespace", "  Bread Flour  ", "", 0, 2.00, SourceInventory},
		{"no match uses fallback", "Water", "", 0.75, 0.75, SourceManual},
		{"no match no fallback is zero manual", "Water", "", 0, 0, SourceManual},
		{"unpriced inventory falls through to fallback", "Rye Flour", "inv-3", 1.80, 1.80, SourceManual},
		{"dangling link falls back to name", "Organic Bread Flour", "inv-gone", 0, 3.50, SourceInventory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveCostPerKg(tt.ingredient, tt.inventoryID, inventory, tt.fallback)
			if res.PricePerKg != tt.wantPrice {
				t.Fatalf("price: got %v, want %v", res.PricePerKg, tt.wantPrice)
			}
			if res.Source != tt.wantSource {
				t.Fatalf("source: got %s, want %s", res.Source, tt.wantSource)
			}
		})
	}
}

func classicSnapshot() domain.RecipeSnapshot {
	return domain.RecipeSnapshot{
		NumberOfLoaves: 2,
		WeightPerLoaf:  900,
		Flours:         []domain.Ingredient{{ID: 1, Name: "Bread Flour", Percentage: 100}},
		Ingredients: []domain.Ingredient{
			{ID: 101, Name: "Water", Percentage: 75},
			{ID: 102, Name: "Levain", Percentage: 20},
			{ID: 103, Name: "Salt", Percentage: 2},
		},
		Version: 1,
	}
}

func TestCostRecipeInventoryOnly(t *testing.T) {
	// Only the flour is priced: total cost is the flour weight at $2/kg.
	inventory := []domain.InventoryItem{{ID: "inv-1", Name: "Bread Flour", CostPerKg: 2.00}}

	got := CostRecipe(classicSnapshot(), inventory)

	approx(t, got.TotalCost, 1.8274, 0.001)
	approx(t, got.CostPerLoaf, 0.9137, 0.001)
	if got.Coverage != CoveragePartial {
		t.Fatalf("coverage: got %s, want %s", got.Coverage, CoveragePartial)
	}
	if len(got.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(got.Lines))
	}
	if !got.Lines[0].FromInventory {
		t.Fatal("flour line should be priced from inventory")
	}
	for _, line := range got.Lines[1:] {
		if line.Cost != 0 || line.FromInventory {
			t.Fatalf("line %s: expected zero manual cost, got %+v", line.Name, line)
		}
	}
}

func TestCostRecipeCoverage(t *testing.T) {
	snap := classicSnapshot()

	full := []domain.InventoryItem{
		{ID: "a", Name: "Bread Flour", CostPerKg: 2},
		{ID: "b", Name: "Water", CostPerKg: 0.01},
		{ID: "c", Name: "Levain", CostPerKg: 4},
		{ID: "d", Name: "Salt", CostPerKg: 1.2},
	}
	if got := CostRecipe(snap, full).Coverage; got != CoverageFull {
		t.Fatalf("full inventory: got %s", got)
	}
	if got := CostRecipe(snap, nil).Coverage; got != CoverageNone {
		t.Fatalf("no inventory: got %s", got)
	}
}

func TestCostRecipeSnapshotFallback(t *testing.T) {
	snap := classicSnapshot()
	snap.Flours[0].CostPerKg = 1.50

	got := CostRecipe(snap, nil)
	approx(t, got.TotalCost, 913.7055/1000*1.50, 0.001)
	if got.Coverage != CoverageNone {
		t.Fatalf("coverage: got %s, want %s", got.Coverage, CoverageNone)
	}
}

func TestCostRecipeZeroLoaves(t *testing.T) {
	snap := classicSnapshot()
	snap.NumberOfLoaves = 0

	got := CostRecipe(snap, nil)
	if got.CostPerLoaf != 0 {
		t.Fatalf("cost per loaf: got %v, want 0", got.CostPerLoaf)
	}
	if got.TotalCost != 0 {
		t.Fatalf("total cost: got %v, want 0", got.TotalCost)
	}
}
