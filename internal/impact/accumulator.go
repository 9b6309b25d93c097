package impact

import (
	"math"
	"sort"
)

// Accumulator folds transactions into running user and community totals.
//
// Feeding the same transactions through Add, in any number of calls, yields
// exactly what AggregateUserImpact and AggregateCommunityImpact return for the
// concatenated slice. An Accumulator is not safe for concurrent use.
type Accumulator struct {
	wasteKg      float64
	co2Kg        float64
	meals        int
	waterLiters  float64
	transactions int

	// donors holds per-donor totals in first-seen order.
	donors     []DonorTotal
	donorIndex map[DonorID]int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		donorIndex: make(map[DonorID]int),
	}
}

// Add folds txns into the running totals.
func (a *Accumulator) Add(txns ...Transaction) {
	if a.donorIndex == nil {
		a.donorIndex = make(map[DonorID]int)
	}

	for i := range txns {
		a.add(&txns[i])
	}
}

func (a *Accumulator) add(tx *Transaction) {
	a.transactions++

	idx, seen := a.donorIndex[tx.Donor]
	if !seen {
		idx = len(a.donors)
		a.donors = append(a.donors, DonorTotal{Donor: tx.Donor})
		a.donorIndex[tx.Donor] = idx
	}
	donor := &a.donors[idx]
	donor.Count++

	if !tx.HasImpact() {
		return
	}

	waste := finiteOrZero(tx.Impact.WastePreventedKg)
	co2 := finiteOrZero(tx.Impact.CO2SavedKg)
	meals := tx.Impact.MealsProvided

	a.wasteKg += waste
	a.co2Kg += co2
	a.meals = saturatingAdd(a.meals, meals)
	a.waterLiters += finiteOrZero(tx.Impact.WaterSavedLiters)

	donor.WasteKg += waste
	donor.CO2Kg += co2
	donor.Meals = saturatingAdd(donor.Meals, meals)
}

// Len returns the number of transactions folded so far.
func (a *Accumulator) Len() int {
	return a.transactions
}

// User returns the totals as a UserImpactSummary.
func (a *Accumulator) User() UserImpactSummary {
	return UserImpactSummary{
		TotalWastePreventedKg: round2(a.wasteKg),
		TotalCO2SavedKg:       round2(a.co2Kg),
		TotalMealsProvided:    a.meals,
		TotalWaterSavedLiters: round2(a.waterLiters),
		TotalTransactions:     a.transactions,
		TreesEquivalent:       round2(a.co2Kg / TreeAbsorptionKgPerYear),
		CarsOffRoadDays:       floorToInt(a.co2Kg / CarAnnualEmissions),
	}
}

// Community returns the totals as a CommunityReport with the top
// TopDonorLimit donors ranked by waste prevented.
func (a *Accumulator) Community() CommunityReport {
	co2 := round2(a.co2Kg)

	return CommunityReport{
		TotalImpact: CommunityImpactSummary{
			TotalWastePreventedKg: round2(a.wasteKg),
			TotalCO2SavedKg:       co2,
			TotalMealsProvided:    a.meals,
			TotalWaterSavedLiters: round2(a.waterLiters),
			TotalTransactions:     a.transactions,
			TotalUsers:            len(a.donors),
			TreesEquivalent:       round2(co2 / TreeAbsorptionKgPerYear),
		},
		TopDonors: RankDonors(a.donors, TopDonorLimit),
	}
}

// RankDonors returns a copy of donors sorted by WasteKg descending, keeping
// the input order between equal totals, truncated to limit entries. A limit
// of zero or less returns the full ranking.
func RankDonors(donors []DonorTotal, limit int) []DonorTotal {
	sorted := make([]DonorTotal, len(donors))
	copy(sorted, donors)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WasteKg > sorted[j].WasteKg
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// saturatingAdd adds b to a, stopping at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
