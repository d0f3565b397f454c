// Package importer turns an extracted weight-based recipe into a
// percentage-based formula snapshot. The one judgment call is flour
// classification, done with a keyword heuristic plus a heaviest-wins
// fallback.
package importer

import (
	"math"
	"strings"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

// flourKeywords mark an ingredient as a flour-blend member.
var flourKeywords = []string{
	"flour", "wheat", "rye", "spelt", "semolina", "durum",
	"einkorn", "emmer", "kamut", "strong", "bread",
	"all-purpose", "plain", "wholemeal",
	"t45", "t55", "t65", "t80", "t110", "t150",
	"manitoba", "00 flour",
}

// exclusionKeywords override a flour match. Levain contains flour but is
// dosed as an add-in; dusting flour never enters the dough.
var exclusionKeywords = []string{
	"levain", "starter", "preferment", "discard", "dusting", "rice flour",
}

// IsLikelyFlour reports whether an ingredient name reads as a flour-blend
// member.
func IsLikelyFlour(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, kw := range exclusionKeywords {
		if strings.Contains(n, kw) {
			return false
		}
	}
	for _, kw := range flourKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// Classify splits the extracted ingredients into flours and add-ins. When
// the heuristic finds no flour at all, the heaviest ingredient is
// promoted: a bread formula without flour is a parse artifact, not a
// real recipe.
func Classify(ingredients []domain.ExtractedIngredient) (flours, addins []domain.ExtractedIngredient) {
	for _, ing := range ingredients {
		if IsLikelyFlour(ing.Name) {
			flours = append(flours, ing)
		} else {
			addins = append(addins, ing)
		}
	}

	if len(flours) == 0 && len(addins) > 0 {
		heaviest, at := addins[0], 0
		for i, ing := range addins {
			if ing.Weight > heaviest.Weight {
				heaviest, at = ing, i
			}
		}
		if heaviest.Weight > 0 {
			flours = []domain.ExtractedIngredient{heaviest}
			addins = append(addins[:at], addins[at+1:]...)
		}
	}
	return flours, addins
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildSnapshot converts extracted weights into a formula snapshot. Flour
// percentages are relative to the summed flour weight, add-ins are
// classical baker's percentages against the same total. Everything is
// rounded to one decimal, so a clean 75% hydration survives the trip.
func BuildSnapshot(recipe *domain.ExtractedRecipe) (string, domain.RecipeSnapshot, error) {
	flours, addins := Classify(recipe.Ingredients)

	var totalFlour float64
	for _, f := range flours {
		totalFlour += f.Weight
	}
	if totalFlour <= 0 {
		return "", domain.RecipeSnapshot{}, domain.ErrNoFlourSelected
	}

	name := strings.TrimSpace(recipe.Name)
	if name == "" {
		name = "Imported Recipe"
	}
	loaves := recipe.NumberOfLoaves
	if loaves <= 0 {
		loaves = 1
	}
	weightPerLoaf := recipe.WeightPerLoaf
	if weightPerLoaf <= 0 {
		weightPerLoaf = 1000
	}

	snap := domain.RecipeSnapshot{
		NumberOfLoaves: loaves,
		WeightPerLoaf:  weightPerLoaf,
		Flours:         make([]domain.Ingredient, 0, len(flours)),
		Ingredients:    make([]domain.Ingredient, 0, len(addins)),
	}

	id := 1
	for _, f := range flours {
		snap.Flours = append(snap.Flours, domain.Ingredient{
			ID:         id,
			Name:       strings.TrimSpace(f.Name),
			Percentage: round1(f.Weight / totalFlour * 100),
		})
		id++
	}
	for _, a := range addins {
		snap.Ingredients = append(snap.Ingredients, domain.Ingredient{
			ID:         id,
			Name:       strings.TrimSpace(a.Name),
			Percentage: round1(a.Weight / totalFlour * 100),
		})
		id++
	}

	return name, snap, nil
}
