package impact

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFoodImpact(t *testing.T) {
	tests := []struct {
		name     string
		category string
		weightKg float64
		quantity float64
		want     ImpactRecord
	}{
		{
			name:     "meat reference value",
			category: "meat",
			weightKg: 2,
			quantity: 1,
			want: ImpactRecord{
				WastePreventedKg: 2,
				CO2SavedKg:       14,
				MealsProvided:    4,
				WaterSavedLiters: 100,
				TreesEquivalent:  0.67,
			},
		},
		{
			name:     "quantity multiplies weight",
			category: "bakery",
			weightKg: 0.5,
			quantity: 3,
			want: ImpactRecord{
				WastePreventedKg: 1.5,
				CO2SavedKg:       1.8,
				MealsProvided:    3,
				WaterSavedLiters: 75,
				TreesEquivalent:  0.09,
			},
		},
		{
			name:     "meals are floored",
			category: "fruits",
			weightKg: 1.3,
			quantity: 1,
			want: ImpactRecord{
				WastePreventedKg: 1.3,
				CO2SavedKg:       1.17,
				MealsProvided:    2,
				WaterSavedLiters: 65,
				TreesEquivalent:  0.06,
			},
		},
		{
			name:     "unknown category uses other",
			category: "mystery",
			weightKg: 10,
			quantity: 1,
			want: ImpactRecord{
				WastePreventedKg: 10,
				CO2SavedKg:       15,
				MealsProvided:    20,
				WaterSavedLiters: 500,
				TreesEquivalent:  0.71,
			},
		},
		{name: "zero weight", category: "meat", weightKg: 0, quantity: 1},
		{name: "zero quantity", category: "meat", weightKg: 2, quantity: 0},
		{name: "negative weight clamps to zero", category: "meat", weightKg: -2, quantity: 1},
		{name: "negative quantity clamps to zero", category: "dairy", weightKg: 2, quantity: -5},
		{name: "NaN weight clamps to zero", category: "dairy", weightKg: math.NaN(), quantity: 1},
		{name: "infinite weight clamps to zero", category: "dairy", weightKg: math.Inf(1), quantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFoodImpact(tt.category, tt.weightKg, tt.quantity)
			assert.InDelta(t, tt.want.WastePreventedKg, got.WastePreventedKg, 1e-9)
			assert.InDelta(t, tt.want.CO2SavedKg, got.CO2SavedKg, 1e-9)
			assert.Equal(t, tt.want.MealsProvided, got.MealsProvided)
			assert.InDelta(t, tt.want.WaterSavedLiters, got.WaterSavedLiters, 1e-9)
			assert.InDelta(t, tt.want.TreesEquivalent, got.TreesEquivalent, 1e-9)
			assert.Zero(t, got.LandfillSpaceSavedM3)
		})
	}
}

func TestComputeFoodImpact_TreesUseUnroundedCO2(t *testing.T) {
	got := ComputeFoodImpact("grains", 7.33, 1)

	unrounded := 7.33 * 1.5
	assert.InDelta(t, math.Round(unrounded*100)/100, got.CO2SavedKg, 1e-9)
	assert.InDelta(t, math.Round(unrounded/21*100)/100, got.TreesEquivalent, 1e-9)
}

func TestComputeNonFoodImpact(t *testing.T) {
	tests := []struct {
		name     string
		category string
		quantity float64
		want     ImpactRecord
	}{
		{
			name:     "electronics reference value",
			category: "electronics",
			quantity: 3,
			want: ImpactRecord{
				WastePreventedKg:     6,
				CO2SavedKg:           300,
				WaterSavedLiters:     1500,
				LandfillSpaceSavedM3: 0.03,
			},
		},
		{
			name:     "single clothing item",
			category: "Clothing",
			quantity: 1,
			want: ImpactRecord{
				WastePreventedKg:     2,
				CO2SavedKg:           15,
				WaterSavedLiters:     2700,
				LandfillSpaceSavedM3: 0.01,
			},
		},
		{
			name:     "unknown category uses other",
			category: "",
			quantity: 4,
			want: ImpactRecord{
				WastePreventedKg:     8,
				CO2SavedKg:           20,
				WaterSavedLiters:     600,
				LandfillSpaceSavedM3: 0.04,
			},
		},
		{name: "zero quantity", category: "toys", quantity: 0},
		{name: "negative quantity clamps to zero", category: "toys", quantity: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNonFoodImpact(tt.category, tt.quantity)
			assert.InDelta(t, tt.want.WastePreventedKg, got.WastePreventedKg, 1e-9)
			assert.InDelta(t, tt.want.CO2SavedKg, got.CO2SavedKg, 1e-9)
			assert.InDelta(t, tt.want.WaterSavedLiters, got.WaterSavedLiters, 1e-9)
			assert.InDelta(t, tt.want.LandfillSpaceSavedM3, got.LandfillSpaceSavedM3, 1e-9)
			assert.Zero(t, got.MealsProvided)
			assert.Zero(t, got.TreesEquivalent)
		})
	}
}

func TestComputeFoodImpact_HugeWeightSaturatesMeals(t *testing.T) {
	got := ComputeFoodImpact("meat", 1e19, 1)

	assert.Equal(t, math.MaxInt, got.MealsProvided)
	assert.Positive(t, got.CO2SavedKg)
}

func TestFloorToInt(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{name: "floors fraction", in: 4.9, want: 4},
		{name: "zero", in: 0, want: 0},
		{name: "negative", in: -3.2, want: 0},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "positive infinity", in: math.Inf(1), want: math.MaxInt},
		{name: "beyond int range", in: 1e20, want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, floorToInt(tt.in))
		})
	}
}

func TestCalculators_Idempotent(t *testing.T) {
	assert.Equal(t, ComputeFoodImpact("snacks", 1.234, 7), ComputeFoodImpact("snacks", 1.234, 7))
	assert.Equal(t, ComputeNonFoodImpact("furniture", 2), ComputeNonFoodImpact("furniture", 2))
}

func TestCalculators_Monotonic(t *testing.T) {
	categories := append(FoodCategories(), "unknown")
	for _, category := range categories {
		prev := ComputeFoodImpact(category, 0, 1)
		for w := 0.25; w <= 20; w += 0.25 {
			cur := ComputeFoodImpact(category, w, 1)
			require.GreaterOrEqual(t, cur.CO2SavedKg, prev.CO2SavedKg, "%s at %.2f kg", category, w)
			require.GreaterOrEqual(t, cur.WastePreventedKg, prev.WastePreventedKg)
			require.GreaterOrEqual(t, cur.WaterSavedLiters, prev.WaterSavedLiters)
			prev = cur
		}
	}

	for _, category := range NonFoodCategories() {
		prev := ComputeNonFoodImpact(category, 0)
		for q := 1.0; q <= 50; q++ {
			cur := ComputeNonFoodImpact(category, q)
			require.GreaterOrEqual(t, cur.CO2SavedKg, prev.CO2SavedKg)
			require.GreaterOrEqual(t, cur.WastePreventedKg, prev.WastePreventedKg)
			require.GreaterOrEqual(t, cur.WaterSavedLiters, prev.WaterSavedLiters)
			prev = cur
		}
	}
}

func TestComputeImpact(t *testing.T) {
	t.Run("food dispatch", func(t *testing.T) {
		tx := Transaction{Kind: KindFood, Category: "meat", WeightKg: 2, Quantity: 1}
		assert.Equal(t, ComputeFoodImpact("meat", 2, 1), ComputeImpact(tx))
	})

	t.Run("non-food dispatch", func(t *testing.T) {
		tx := Transaction{Kind: KindNonFood, Category: "electronics", Quantity: 3}
		assert.Equal(t, ComputeNonFoodImpact("electronics", 3), ComputeImpact(tx))
	})

	t.Run("missing quantity counts as one unit", func(t *testing.T) {
		tx := Transaction{Kind: KindNonFood, Category: "books"}
		assert.Equal(t, ComputeNonFoodImpact("books", 1), ComputeImpact(tx))
	})
}

func TestComplete(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("attaches impact and completion time", func(t *testing.T) {
		tx := Transaction{ID: "t1", Donor: "alice", Kind: KindFood, Category: "meat", WeightKg: 2, Status: StatusListed}

		got := Complete(tx, at)

		require.NotNil(t, got.Impact)
		assert.InDelta(t, 14.0, got.Impact.CO2SavedKg, 1e-9)
		assert.Equal(t, StatusCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, at, *got.CompletedAt)

		assert.Nil(t, tx.Impact, "input must not be modified")
		assert.Equal(t, StatusListed, tx.Status)
	})

	t.Run("existing impact is kept", func(t *testing.T) {
		existing := &ImpactRecord{CO2SavedKg: 42}
		tx := Transaction{Kind: KindFood, Category: "meat", WeightKg: 2, Impact: existing}

		got := Complete(tx, at)

		assert.Same(t, existing, got.Impact)
	})
}
