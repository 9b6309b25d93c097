package impact

import (
	"sort"
	"strings"
)

// NonFoodFactor holds the per-unit coefficients for a non-food category.
type NonFoodFactor struct {
	CO2Kg       float64 `json:"co2Kg"`
	WaterLiters float64 `json:"waterLiters"`
}

// foodCO2Factors maps a food category to kg CO2 saved per kg of food.
//
//nolint:gochecknoglobals // Read-only lookup table.
var foodCO2Factors = map[string]float64{
	"fruits":         0.9,
	"vegetables":     0.8,
	"grains":         1.5,
	"dairy":          2.5,
	"meat":           7.0,
	"bakery":         1.2,
	"canned-goods":   1.3,
	"beverages":      0.7,
	"snacks":         1.4,
	"frozen":         1.8,
	"prepared-meals": 2.2,
	CategoryOther:    1.5,
}

// nonFoodFactors maps a non-food category to its per-unit coefficients.
//
//nolint:gochecknoglobals // Read-only lookup table.
var nonFoodFactors = map[string]NonFoodFactor{
	"clothing":    {CO2Kg: 15, WaterLiters: 2700},
	"electronics": {CO2Kg: 100, WaterLiters: 500},
	"furniture":   {CO2Kg: 50, WaterLiters: 1000},
	"books":       {CO2Kg: 4, WaterLiters: 100},
	"toys":        {CO2Kg: 8, WaterLiters: 200},
	"household":   {CO2Kg: 10, WaterLiters: 300},
	CategoryOther: {CO2Kg: 5, WaterLiters: 150},
}

// normalizeCategory lowercases and trims a category for table lookup.
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// LookupFoodFactor returns kg CO2 saved per kg of food for category.
// Matching is case-insensitive; unknown or empty categories resolve to "other".
func LookupFoodFactor(category string) float64 {
	if f, ok := foodCO2Factors[normalizeCategory(category)]; ok {
		return f
	}
	return foodCO2Factors[CategoryOther]
}

// LookupNonFoodFactor returns the per-unit coefficients for category.
// Matching is case-insensitive; unknown or empty categories resolve to "other".
func LookupNonFoodFactor(category string) NonFoodFactor {
	if f, ok := nonFoodFactors[normalizeCategory(category)]; ok {
		return f
	}
	return nonFoodFactors[CategoryOther]
}

// IsKnownCategory reports whether category has its own row in the table for
// kind, as opposed to falling back to "other".
func IsKnownCategory(kind Kind, category string) bool {
	key := normalizeCategory(category)
	if kind == KindFood {
		_, ok := foodCO2Factors[key]
		return ok
	}
	_, ok := nonFoodFactors[key]
	return ok
}

// FoodCategories returns the food categories in sorted order.
func FoodCategories() []string {
	return sortedKeys(foodCO2Factors)
}

// NonFoodCategories returns the non-food categories in sorted order.
func NonFoodCategories() []string {
	return sortedKeys(nonFoodFactors)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
