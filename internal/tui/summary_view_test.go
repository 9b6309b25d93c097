package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ecoshare/internal/impact"
)

func TestRenderUserSummary(t *testing.T) {
	summary := impact.UserImpactSummary{
		TotalWastePreventedKg: 110,
		TotalCO2SavedKg:       314,
		TotalMealsProvided:    40,
		TotalWaterSavedLiters: 2750,
		TotalTransactions:     5,
		TreesEquivalent:       14.95,
		CarsOffRoadDays:       68,
	}

	out := RenderUserSummary("alice", summary, impact.GetImpactMilestones(summary.TotalCO2SavedKg), 120)

	assert.Contains(t, out, "IMPACT FOR ALICE")
	assert.Contains(t, out, "314.00 kg")
	assert.Contains(t, out, "2,750 L")
	assert.Contains(t, out, "~68 days")
	assert.Contains(t, out, "Young Tree")
	assert.Contains(t, out, "Next: Grove Keeper")
}

func TestRenderUserSummary_AllMilestones(t *testing.T) {
	out := RenderUserSummary("", impact.UserImpactSummary{TotalCO2SavedKg: 5000}, impact.GetImpactMilestones(5000), 120)
	assert.Contains(t, out, "YOUR IMPACT")
	assert.Contains(t, out, "All milestones reached")
}

func TestRenderCommunitySummary(t *testing.T) {
	assert.Contains(t, RenderCommunitySummary(impact.CommunityImpactSummary{}, 80), "No completed transactions")

	out := RenderCommunitySummary(sampleReport().TotalImpact, 80)
	assert.Contains(t, out, "COMMUNITY IMPACT")
	assert.Contains(t, out, "40.00 kg")
}

func TestProgressBar(t *testing.T) {
	assert.Contains(t, ProgressBar(150, 10), "100.0%")
	assert.Contains(t, ProgressBar(-3, 10), "0.0%")
	assert.Contains(t, ProgressBar(62.8, 10), "62.8%")
}
