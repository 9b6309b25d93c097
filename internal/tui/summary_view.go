// Package tui renders impact summaries for terminals and drives the
// interactive community leaderboard.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/ecoshare/internal/impact"
)

const borderPadding = 2

// RenderUserSummary renders a boxed personal impact summary, including
// milestone progress, width columns wide.
func RenderUserSummary(donor string, summary impact.UserImpactSummary, state impact.MilestoneState, width int) string {
	var b strings.Builder

	title := "YOUR IMPACT"
	if donor != "" {
		title = "IMPACT FOR " + strings.ToUpper(donor)
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")

	writeMetric(&b, "CO2 saved", impact.FormatFloat(summary.TotalCO2SavedKg, 2)+" kg")
	writeMetric(&b, "Waste prevented", impact.FormatFloat(summary.TotalWastePreventedKg, 2)+" kg")
	writeMetric(&b, "Meals provided", impact.FormatNumber(int64(summary.TotalMealsProvided)))
	writeMetric(&b, "Water saved", impact.FormatLarge(summary.TotalWaterSavedLiters)+" L")
	writeMetric(&b, "Transactions", strconv.Itoa(summary.TotalTransactions))

	if text := impact.EquivalencyText(summary); text != "" {
		b.WriteString(SubtleStyle.Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderMilestones(state))

	return BoxStyle.Width(width - borderPadding).Render(strings.TrimRight(b.String(), "\n"))
}

// RenderCommunitySummary renders boxed community totals, width columns wide.
func RenderCommunitySummary(summary impact.CommunityImpactSummary, width int) string {
	if summary.TotalTransactions == 0 {
		return InfoStyle.Render("No completed transactions to summarize.")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("COMMUNITY IMPACT"))
	b.WriteString("\n")

	writeMetric(&b, "CO2 saved", impact.FormatFloat(summary.TotalCO2SavedKg, 2)+" kg")
	writeMetric(&b, "Waste prevented", impact.FormatFloat(summary.TotalWastePreventedKg, 2)+" kg")
	writeMetric(&b, "Meals provided", impact.FormatNumber(int64(summary.TotalMealsProvided)))
	writeMetric(&b, "Water saved", impact.FormatLarge(summary.TotalWaterSavedLiters)+" L")
	writeMetric(&b, "Donors", strconv.Itoa(summary.TotalUsers))
	writeMetric(&b, "Transactions", strconv.Itoa(summary.TotalTransactions))
	writeMetric(&b, "Trees equivalent", impact.FormatFloat(summary.TreesEquivalent, 2))

	return BoxStyle.Width(width - borderPadding).Render(strings.TrimRight(b.String(), "\n"))
}

func renderMilestones(state impact.MilestoneState) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("MILESTONES"))
	b.WriteString("\n")

	if len(state.Achieved) == 0 {
		b.WriteString(InfoStyle.Render("None yet"))
	} else {
		b.WriteString(GoldStyle.Render(strings.Join(state.Achieved, " · ")))
	}
	b.WriteString("\n")

	if state.NextMilestone != nil {
		next := state.NextMilestone
		b.WriteString(LabelStyle.Render("Next: "))
		b.WriteString(ValueStyle.Render(next.String()))
		b.WriteString("\n")
		b.WriteString(ProgressBar(next.Progress, progressBarWidth))
	} else {
		b.WriteString(AccentStyle.Render("All milestones reached"))
	}
	b.WriteString("\n")
	return b.String()
}

func writeMetric(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-18s", label+":")))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}
