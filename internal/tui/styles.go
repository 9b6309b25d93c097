package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent = lipgloss.Color("42")
	ColorTitle  = lipgloss.Color("39")
	ColorBorder = lipgloss.Color("240")
	ColorLabel  = lipgloss.Color("245")
	ColorMuted  = lipgloss.Color("241")
	ColorGold   = lipgloss.Color("220")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorTitle)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	AccentStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	SubtleStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	GoldStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorGold)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTitle).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)
