package impact

import "math"

// milestones is the ascending list of CO2 achievement tiers.
//
//nolint:gochecknoglobals // Read-only lookup table.
var milestones = []Milestone{
	{ThresholdKg: 10, Label: "Seedling", Description: "Saved your first 10 kg of CO2"},
	{ThresholdKg: 50, Label: "Sprout", Description: "50 kg of CO2 kept out of the atmosphere"},
	{ThresholdKg: 100, Label: "Sapling", Description: "100 kg of CO2 saved through sharing"},
	{ThresholdKg: 250, Label: "Young Tree", Description: "250 kg of CO2 saved, a tree's decade of work"},
	{ThresholdKg: 500, Label: "Grove Keeper", Description: "500 kg of CO2 saved by your donations"},
	{ThresholdKg: 1000, Label: "Forest Guardian", Description: "One metric ton of CO2 saved"},
}

// Milestones returns a copy of the milestone tiers in ascending order.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}

// GetImpactMilestones reports every tier reached by totalCO2Kg and the next
// tier above it.
//
// Achieved lists the label of every threshold less than or equal to the
// total, lowest first. NextMilestone is the lowest threshold strictly greater
// than the total, with Progress = total / threshold * 100; it is nil once the
// highest tier is reached. Negative or NaN totals are treated as zero.
func GetImpactMilestones(totalCO2Kg float64) MilestoneState {
	total := totalCO2Kg
	if math.IsNaN(total) || total < 0 {
		total = 0
	}

	state := MilestoneState{Achieved: []string{}}
	for _, m := range milestones {
		if m.ThresholdKg <= total {
			state.Achieved = append(state.Achieved, m.Label)
			continue
		}
		state.NextMilestone = &MilestoneInfo{
			Milestone: m,
			Progress:  total / m.ThresholdKg * PercentageMultiplier,
		}
		break
	}

	return state
}
