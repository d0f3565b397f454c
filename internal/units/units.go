// Package units converts between kitchen measurements and grams. All
// conversion factors are static; there is no state and no rounding beyond
// float arithmetic.
package units

import "github.com/jin0205/sourdough-pro-ai/internal/domain"

// Grams per unit for the supported mass units.
const (
	gramsPerPound    = 453.592
	gramsPerOunce    = 28.3495
	gramsPerKilogram = 1000
)

// ToGrams converts a weight in the given mass unit to grams. Unknown units
// are treated as grams.
func ToGrams(weight float64, unit domain.Unit) float64 {
	switch unit {
	case domain.UnitPound:
		return weight * gramsPerPound
	case domain.UnitOunce:
		return weight * gramsPerOunce
	case domain.UnitKilogram:
		return weight * gramsPerKilogram
	default:
		return weight
	}
}

// VolumeUnit is a supported kitchen volume measure.
type VolumeUnit string

// Supported volume units. A cup is 16 tablespoons or 48 teaspoons.
const (
	Cup        VolumeUnit = "cup"
	Tablespoon VolumeUnit = "tbsp"
	Teaspoon   VolumeUnit = "tsp"
)

// Densities maps common bakery ingredients to grams per cup. These are the
// mass-equivalent volume approximations the tool supports; anything not
// listed falls back to DefaultDensity.
var Densities = map[string]float64{
	"Flour (AP/Bread)":     120,
	"Whole Wheat Flour":    125,
	"Rye Flour":            105,
	"Water":                236.6,
	"Milk":                 245,
	"Sugar (Granulated)":   200,
	"Brown Sugar (Packed)": 210,
	"Butter":               227,
	"Honey/Molasses":       340,
	"Salt (Fine)":          270,
	"Yeast (Instant)":      150,
}

// DefaultDensity is the grams-per-cup fallback for unlisted ingredients,
// matching all-purpose flour.
const DefaultDensity = 120

// VolumeToGrams converts a volume amount of a named ingredient to grams
// using the density table.
func VolumeToGrams(amount float64, unit VolumeUnit, ingredient string) float64 {
	density, ok := Densities[ingredient]
	if !ok {
		density = DefaultDensity
	}
	factor := 1.0
	switch unit {
	case Tablespoon:
		factor = 1.0 / 16
	case Teaspoon:
		factor = 1.0 / 48
	}
	return amount * density * factor
}

// CelsiusToFahrenheit converts a dough or oven temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a dough or oven temperature.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
