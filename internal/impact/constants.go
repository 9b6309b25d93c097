package impact

// Conversion constants used by the calculator and aggregators.
const (
	// MealsPerKg assumes an average meal of 0.5 kg.
	MealsPerKg = 2.0

	// WaterLitersPerKgFood is the flat water estimate for food donations.
	WaterLitersPerKgFood = 50.0

	// TreeAbsorptionKgPerYear is the CO2 one tree absorbs in a year.
	TreeAbsorptionKgPerYear = 21.0

	// WasteKgPerItem is the rough weight proxy for a non-food item.
	WasteKgPerItem = 2.0

	// LandfillM3PerItem is the landfill volume one non-food item occupies.
	LandfillM3PerItem = 0.01

	// CarAnnualEmissions is one passenger car's yearly CO2 in metric tons.
	// It is applied directly to kilogram totals when deriving car-days.
	// Dashboards already depend on that scale, so it is kept as is.
	CarAnnualEmissions = 4.6

	// DefaultQuantity is the quantity assumed when a caller omits one.
	DefaultQuantity = 1.0

	// TopDonorLimit is the length of the community leaderboard.
	TopDonorLimit = 10

	// PercentageMultiplier converts a ratio to a percentage.
	PercentageMultiplier = 100.0
)

// Category name of the fallback row in both factor tables.
const CategoryOther = "other"
