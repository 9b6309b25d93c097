package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	progressBarWidth  = 30
	progressFilled    = "█"
	progressEmpty     = "░"
	maxProgressPct    = 100.0
	progressEmptyGrey = lipgloss.Color("240")
)

// ProgressBar renders pct (0..100) as a bar width cells wide followed by the
// percentage.
func ProgressBar(pct float64, width int) string {
	clamped := min(max(pct, 0), maxProgressPct)
	filled := int(clamped / maxProgressPct * float64(width))

	bar := lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat(progressFilled, filled)) +
		lipgloss.NewStyle().Foreground(progressEmptyGrey).Render(strings.Repeat(progressEmpty, width-filled))
	return fmt.Sprintf("%s %.1f%%", bar, clamped)
}
