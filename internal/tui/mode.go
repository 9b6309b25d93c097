package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how human-readable output is presented.
type OutputMode int

const (
	// OutputModePlain is uncolored text for pipes and dumb terminals.
	OutputModePlain OutputMode = iota

	// OutputModeStyled is lipgloss-styled text on a terminal.
	OutputModeStyled

	// OutputModeInteractive is a full-screen bubbletea program.
	OutputModeInteractive
)

// DetectOutputMode picks a mode from the flags and the terminal state of
// stdout. NO_COLOR and TERM=dumb force plain output.
func DetectOutputMode(forcePlain, forceInteractive bool) OutputMode {
	if forcePlain || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !IsTerminal(os.Stdout) {
		return OutputModePlain
	}
	if forceInteractive {
		return OutputModeInteractive
	}
	return OutputModeStyled
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when unknown.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
