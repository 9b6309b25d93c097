package impact

import (
	"math"
	"time"
)

// ComputeFoodImpact computes the impact of donating quantity units of food
// weighing weightKg each.
//
// CO2, water and trees are rounded to two decimals; trees are derived from
// the unrounded CO2 figure so rounding does not compound. Negative, NaN or
// infinite inputs are treated as zero and yield a zero-valued record.
func ComputeFoodImpact(category string, weightKg, quantity float64) ImpactRecord {
	totalWeight := nonNegative(weightKg) * nonNegative(quantity)
	co2 := totalWeight * LookupFoodFactor(category)

	return ImpactRecord{
		WastePreventedKg: totalWeight,
		CO2SavedKg:       round2(co2),
		MealsProvided:    floorToInt(totalWeight * MealsPerKg),
		WaterSavedLiters: round2(totalWeight * WaterLitersPerKgFood),
		TreesEquivalent:  round2(co2 / TreeAbsorptionKgPerYear),
	}
}

// ComputeNonFoodImpact computes the impact of donating quantity non-food items.
//
// Unlike the food path, CO2 and water are not rounded; only landfill volume
// is rounded (to three decimals). Negative, NaN or infinite quantities are
// treated as zero.
func ComputeNonFoodImpact(category string, quantity float64) ImpactRecord {
	q := nonNegative(quantity)
	factor := LookupNonFoodFactor(category)

	return ImpactRecord{
		WastePreventedKg:     q * WasteKgPerItem,
		CO2SavedKg:           factor.CO2Kg * q,
		WaterSavedLiters:     factor.WaterLiters * q,
		LandfillSpaceSavedM3: round3(q * LandfillM3PerItem),
	}
}

// ComputeImpact dispatches to the food or non-food calculator based on the
// transaction kind. A transaction without a quantity counts as one unit.
func ComputeImpact(tx Transaction) ImpactRecord {
	quantity := tx.Quantity
	if quantity == 0 {
		quantity = DefaultQuantity
	}

	if tx.Kind == KindFood {
		return ComputeFoodImpact(tx.Category, tx.WeightKg, quantity)
	}
	return ComputeNonFoodImpact(tx.Category, quantity)
}

// Complete marks tx as completed at the given time and attaches its impact
// record. A transaction that already carries an impact keeps it unchanged.
// The input is not modified; a copy is returned.
func Complete(tx Transaction, at time.Time) Transaction {
	out := tx
	out.Status = StatusCompleted
	if out.CompletedAt == nil {
		completedAt := at
		out.CompletedAt = &completedAt
	}
	if !out.HasImpact() {
		record := ComputeImpact(tx)
		out.Impact = &record
	}
	return out
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// floorToInt floors v into an int, saturating at math.MaxInt. NaN and
// negative values yield zero.
func floorToInt(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(math.MaxInt):
		return math.MaxInt
	default:
		return int(math.Floor(v))
	}
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}

func round3(v float64) float64 {
	return roundTo(v, 3)
}

func roundTo(v float64, precision int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	return math.Round(v*multiplier) / multiplier
}
