package impact

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completed builds a completed transaction with its impact attached.
func completed(donor DonorID, kind Kind, category string, weightKg, quantity float64) Transaction {
	tx := Transaction{Donor: donor, Kind: kind, Category: category, WeightKg: weightKg, Quantity: quantity}
	record := ComputeImpact(tx)
	tx.Impact = &record
	tx.Status = StatusCompleted
	return tx
}

func TestAggregateUserImpact(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got := AggregateUserImpact(nil)
		assert.Equal(t, UserImpactSummary{}, got)

		next := GetImpactMilestones(got.TotalCO2SavedKg).NextMilestone
		require.NotNil(t, next)
		assert.InDelta(t, 10.0, next.ThresholdKg, 1e-9)
		assert.Zero(t, next.Progress)
	})

	t.Run("sums food and non-food", func(t *testing.T) {
		txns := []Transaction{
			completed("alice", KindFood, "meat", 2, 1),
			completed("alice", KindNonFood, "electronics", 0, 3),
		}

		got := AggregateUserImpact(txns)

		assert.InDelta(t, 8.0, got.TotalWastePreventedKg, 1e-9)
		assert.InDelta(t, 314.0, got.TotalCO2SavedKg, 1e-9)
		assert.Equal(t, 4, got.TotalMealsProvided)
		assert.InDelta(t, 1600.0, got.TotalWaterSavedLiters, 1e-9)
		assert.Equal(t, 2, got.TotalTransactions)
		assert.InDelta(t, 14.95, got.TreesEquivalent, 1e-9)
		assert.Equal(t, 68, got.CarsOffRoadDays) // floor(314 / 4.6)
	})

	t.Run("transactions without impact still count", func(t *testing.T) {
		txns := []Transaction{
			completed("alice", KindFood, "dairy", 1, 1),
			{Donor: "alice", Kind: KindFood, Category: "dairy", WeightKg: 100},
			{Donor: "alice", Kind: KindNonFood, Category: "toys", Quantity: 5},
		}

		got := AggregateUserImpact(txns)

		assert.Equal(t, 3, got.TotalTransactions)
		assert.InDelta(t, 2.5, got.TotalCO2SavedKg, 1e-9)
		assert.InDelta(t, 1.0, got.TotalWastePreventedKg, 1e-9)
	})

	t.Run("non-finite impact fields count as zero", func(t *testing.T) {
		txns := []Transaction{
			{Donor: "bob", Impact: &ImpactRecord{WastePreventedKg: math.NaN(), CO2SavedKg: math.Inf(1), WaterSavedLiters: 3}},
		}

		got := AggregateUserImpact(txns)

		assert.Zero(t, got.TotalWastePreventedKg)
		assert.Zero(t, got.TotalCO2SavedKg)
		assert.InDelta(t, 3.0, got.TotalWaterSavedLiters, 1e-9)
	})

	t.Run("totals rounded to two decimals", func(t *testing.T) {
		txns := []Transaction{
			{Impact: &ImpactRecord{WastePreventedKg: 0.333, CO2SavedKg: 0.111, WaterSavedLiters: 0.005}},
			{Impact: &ImpactRecord{WastePreventedKg: 0.333, CO2SavedKg: 0.111, WaterSavedLiters: 0.005}},
		}

		got := AggregateUserImpact(txns)

		assert.InDelta(t, 0.67, got.TotalWastePreventedKg, 1e-9)
		assert.InDelta(t, 0.22, got.TotalCO2SavedKg, 1e-9)
		assert.InDelta(t, 0.01, got.TotalWaterSavedLiters, 1e-9)
	})
}

func TestAggregateCommunityImpact(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got := AggregateCommunityImpact([]Transaction{})
		assert.Equal(t, CommunityImpactSummary{}, got.TotalImpact)
		assert.Empty(t, got.TopDonors)
	})

	t.Run("totals and leaderboard", func(t *testing.T) {
		txns := []Transaction{
			completed("alice", KindFood, "meat", 2, 1),           // waste 2
			completed("bob", KindNonFood, "electronics", 0, 3),   // waste 6
			completed("alice", KindFood, "vegetables", 1, 1),     // waste 1 -> alice 3
			{Donor: "carol", Kind: KindFood, Category: "bakery"}, // no impact
		}

		got := AggregateCommunityImpact(txns)

		total := got.TotalImpact
		assert.Equal(t, 4, total.TotalTransactions)
		assert.Equal(t, 3, total.TotalUsers)
		assert.InDelta(t, 9.0, total.TotalWastePreventedKg, 1e-9)
		assert.InDelta(t, 314.8, total.TotalCO2SavedKg, 1e-9)
		assert.Equal(t, 6, total.TotalMealsProvided)
		assert.InDelta(t, 1650.0, total.TotalWaterSavedLiters, 1e-9)
		assert.InDelta(t, 14.99, total.TreesEquivalent, 1e-9)

		require.Len(t, got.TopDonors, 3)
		assert.Equal(t, DonorID("bob"), got.TopDonors[0].Donor)
		assert.Equal(t, DonorID("alice"), got.TopDonors[1].Donor)
		assert.Equal(t, 2, got.TopDonors[1].Count)
		assert.Equal(t, 6, got.TopDonors[1].Meals)
		assert.Equal(t, DonorID("carol"), got.TopDonors[2].Donor)
		assert.Equal(t, 1, got.TopDonors[2].Count)
		assert.Zero(t, got.TopDonors[2].WasteKg)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		txns := []Transaction{
			completed("zoe", KindNonFood, "books", 0, 1),
			completed("adam", KindNonFood, "toys", 0, 1),
			completed("mia", KindNonFood, "books", 0, 2),
			completed("bea", KindNonFood, "clothing", 0, 1),
		}

		got := AggregateCommunityImpact(txns)

		donors := make([]DonorID, 0, len(got.TopDonors))
		for _, d := range got.TopDonors {
			donors = append(donors, d.Donor)
		}
		assert.Equal(t, []DonorID{"mia", "zoe", "adam", "bea"}, donors)
	})

	t.Run("leaderboard truncated to ten", func(t *testing.T) {
		var txns []Transaction
		for i := range 15 {
			txns = append(txns, completed(DonorID(fmt.Sprintf("donor-%02d", i)), KindNonFood, "books", 0, float64(i+1)))
		}

		got := AggregateCommunityImpact(txns)

		assert.Equal(t, 15, got.TotalImpact.TotalUsers)
		require.Len(t, got.TopDonors, TopDonorLimit)
		assert.Equal(t, DonorID("donor-14"), got.TopDonors[0].Donor)
		assert.Equal(t, DonorID("donor-05"), got.TopDonors[9].Donor)
	})

	t.Run("empty donor is its own identity", func(t *testing.T) {
		txns := []Transaction{
			completed("", KindFood, "meat", 1, 1),
			completed("", KindFood, "meat", 1, 1),
		}

		got := AggregateCommunityImpact(txns)

		assert.Equal(t, 1, got.TotalImpact.TotalUsers)
		require.Len(t, got.TopDonors, 1)
		assert.Equal(t, 2, got.TopDonors[0].Count)
	})
}

func TestAggregateUserImpact_HugeTotalsStayNonNegative(t *testing.T) {
	txns := []Transaction{
		{Donor: "alice", Impact: &ImpactRecord{CO2SavedKg: 1e20, MealsProvided: math.MaxInt}},
		{Donor: "alice", Impact: &ImpactRecord{CO2SavedKg: 1, MealsProvided: 5}},
	}

	got := AggregateUserImpact(txns)

	assert.Equal(t, math.MaxInt, got.CarsOffRoadDays)
	assert.Equal(t, math.MaxInt, got.TotalMealsProvided)

	community := AggregateCommunityImpact(txns)
	assert.Equal(t, math.MaxInt, community.TotalImpact.TotalMealsProvided)
	require.Len(t, community.TopDonors, 1)
	assert.Equal(t, math.MaxInt, community.TopDonors[0].Meals)
}

func TestAggregateCommunityImpact_Invariants(t *testing.T) {
	categories := append(FoodCategories(), NonFoodCategories()...)

	var txns []Transaction
	for i := range 97 {
		donor := DonorID(fmt.Sprintf("u%d", i%13))
		category := categories[i%len(categories)]
		if i%7 == 0 {
			txns = append(txns, Transaction{Donor: donor, Kind: KindFood, Category: category})
			continue
		}
		if i%2 == 0 {
			txns = append(txns, completed(donor, KindFood, category, 0.37*float64(i%5+1), float64(i%3+1)))
		} else {
			txns = append(txns, completed(donor, KindNonFood, category, 0, float64(i%4+1)))
		}
	}

	got := AggregateCommunityImpact(txns)

	assert.Equal(t, len(txns), got.TotalImpact.TotalTransactions)
	assert.Equal(t, 10, len(got.TopDonors))
	assert.Equal(t, 13, got.TotalImpact.TotalUsers)

	for i := 1; i < len(got.TopDonors); i++ {
		assert.GreaterOrEqual(t, got.TopDonors[i-1].WasteKg, got.TopDonors[i].WasteKg)
	}

	var donorWaste float64
	for _, d := range RankDonors(donorTotals(txns), 0) {
		donorWaste += d.WasteKg
	}
	assert.InDelta(t, got.TotalImpact.TotalWastePreventedKg, donorWaste, 0.01)
}

func TestRankDonors(t *testing.T) {
	donors := []DonorTotal{
		{Donor: "a", WasteKg: 1},
		{Donor: "b", WasteKg: 3},
		{Donor: "c", WasteKg: 3},
	}

	t.Run("does not modify input", func(t *testing.T) {
		_ = RankDonors(donors, 0)
		assert.Equal(t, DonorID("a"), donors[0].Donor)
	})

	t.Run("no limit returns all", func(t *testing.T) {
		got := RankDonors(donors, 0)
		require.Len(t, got, 3)
		assert.Equal(t, []DonorID{"b", "c", "a"}, []DonorID{got[0].Donor, got[1].Donor, got[2].Donor})
	})

	t.Run("limit truncates", func(t *testing.T) {
		assert.Len(t, RankDonors(donors, 2), 2)
	})
}

// donorTotals sums waste per donor in first-seen order.
func donorTotals(txns []Transaction) []DonorTotal {
	var out []DonorTotal
	index := make(map[DonorID]int)
	for _, tx := range txns {
		i, ok := index[tx.Donor]
		if !ok {
			i = len(out)
			index[tx.Donor] = i
			out = append(out, DonorTotal{Donor: tx.Donor})
		}
		if tx.Impact != nil {
			out[i].WasteKg += tx.Impact.WastePreventedKg
		}
	}
	return out
}
