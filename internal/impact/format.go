package impact

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display scaling thresholds.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators, e.g. "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators,
// e.g. FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	format := fmt.Sprintf("%%.%df", precision)
	return printer.Sprintf(format, roundTo(f, precision))
}

// FormatLarge abbreviates values of a million or more ("~1.5 million") and
// falls back to a separated integer below that.
func FormatLarge(n float64) string {
	switch {
	case n >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", n/billionThreshold)
	case n >= millionThreshold:
		return fmt.Sprintf("~%.1f million", n/millionThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// EquivalencyText describes a CO2 total in relatable terms, for example
// "Equivalent to ~3 trees growing for a year or ~2 days of a car off the road".
// It returns an empty string when the total is too small to be meaningful.
func EquivalencyText(summary UserImpactSummary) string {
	if summary.TreesEquivalent < 1 && summary.CarsOffRoadDays < 1 {
		return ""
	}
	return fmt.Sprintf("Equivalent to ~%s trees growing for a year or ~%s days of a car off the road",
		FormatLarge(summary.TreesEquivalent), FormatLarge(float64(summary.CarsOffRoadDays)))
}
