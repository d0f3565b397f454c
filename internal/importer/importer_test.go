package importer

import (
	"errors"
	"testing"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

func TestIsLikelyFlour(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Bread Flour", true},
		{"Whole Wheat", true},
		{"Dark Rye", true},
		{"T65", true},
		{"Tipo 00 flour", true},
		{"Manitoba", true},
		{"Water", false},
		{"Sea Salt", false},
		{"Levain", false},
		{"Levain discard", false},
		{"Sourdough starter (100% hydration)", false},
		{"Rice flour for dusting", false},
		{"Rice Flour", false},
	}
	for _, tc := range cases {
		if got := IsLikelyFlour(tc.name); got != tc.want {
			t.Errorf("IsLikelyFlour(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBuildSnapshot(t *testing.T) {
	recipe := &domain.ExtractedRecipe{
		Name: "Weekend Loaf",
		Ingredients: []domain.ExtractedIngredient{
			{Name: "Bread Flour", Weight: 500},
			{Name: "Water", Weight: 375},
			{Name: "Levain discard", Weight: 50},
			{Name: "Salt", Weight: 10},
		},
	}

	name, snap, err := BuildSnapshot(recipe)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if name != "Weekend Loaf" {
		t.Fatalf("name: %q", name)
	}

	if len(snap.Flours) != 1 || snap.Flours[0].Name != "Bread Flour" || snap.Flours[0].Percentage != 100 {
		t.Fatalf("flours: %+v", snap.Flours)
	}
	if len(snap.Ingredients) != 3 {
		t.Fatalf("add-ins: %+v", snap.Ingredients)
	}
	if snap.Ingredients[0].Percentage != 75 {
		t.Fatalf("water: %+v", snap.Ingredients[0])
	}
	if snap.Ingredients[1].Name != "Levain discard" || snap.Ingredients[1].Percentage != 10 {
		t.Fatalf("levain classified wrong: %+v", snap.Ingredients[1])
	}
	if snap.Ingredients[2].Percentage != 2 {
		t.Fatalf("salt: %+v", snap.Ingredients[2])
	}

	// Defaults when the text gave no batch size.
	if snap.NumberOfLoaves != 1 || snap.WeightPerLoaf != 1000 {
		t.Fatalf("batch defaults: %+v", snap)
	}

	// Unique ids across both lists.
	seen := map[int]bool{}
	for _, ing := range append(snap.Flours, snap.Ingredients...) {
		if seen[ing.ID] {
			t.Fatalf("duplicate ingredient id %d", ing.ID)
		}
		seen[ing.ID] = true
	}
}

func TestBuildSnapshotMultiFlourBlend(t *testing.T) {
	recipe := &domain.ExtractedRecipe{
		Ingredients: []domain.ExtractedIngredient{
			{Name: "Bread Flour", Weight: 800},
			{Name: "Whole Wheat", Weight: 200},
			{Name: "Water", Weight: 750},
		},
	}

	name, snap, err := BuildSnapshot(recipe)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if name != "Imported Recipe" {
		t.Fatalf("default name: %q", name)
	}
	if snap.Flours[0].Percentage != 80 || snap.Flours[1].Percentage != 20 {
		t.Fatalf("blend split: %+v", snap.Flours)
	}
	if snap.Ingredients[0].Percentage != 75 {
		t.Fatalf("hydration: %+v", snap.Ingredients[0])
	}
}

func TestClassifyHeaviestFallback(t *testing.T) {
	// Nothing matches the keyword list; the heaviest line is promoted.
	ingredients := []domain.ExtractedIngredient{
		{Name: "Masa", Weight: 600},
		{Name: "Water", Weight: 400},
		{Name: "Salt", Weight: 12},
	}

	flours, addins := Classify(ingredients)
	if len(flours) != 1 || flours[0].Name != "Masa" {
		t.Fatalf("flours: %+v", flours)
	}
	if len(addins) != 2 {
		t.Fatalf("add-ins: %+v", addins)
	}
}

func TestBuildSnapshotNoUsableFlour(t *testing.T) {
	recipe := &domain.ExtractedRecipe{
		Ingredients: []domain.ExtractedIngredient{
			{Name: "Water", Weight: 0},
			{Name: "Salt", Weight: 0},
		},
	}
	if _, _, err := BuildSnapshot(recipe); !errors.Is(err, domain.ErrNoFlourSelected) {
		t.Fatalf("got %v, want ErrNoFlourSelected", err)
	}
}

func TestBuildSnapshotRoundsToOneDecimal(t *testing.T) {
	recipe := &domain.ExtractedRecipe{
		Ingredients: []domain.ExtractedIngredient{
			{Name: "Bread Flour", Weight: 300},
			{Name: "Water", Weight: 200},
		},
	}
	_, snap, err := BuildSnapshot(recipe)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// 200/300 = 66.666...% rounds to 66.7.
	if snap.Ingredients[0].Percentage != 66.7 {
		t.Fatalf("rounding: %+v", snap.Ingredients[0])
	}
}
