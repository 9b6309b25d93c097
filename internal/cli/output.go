package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/tui"
)

const (
	tabMinWidth = 0
	tabWidth    = 8
	tabPadding  = 2
	tabPadChar  = ' '

	defaultTermWidth = 100
)

// outputFormat returns the --output flag or, when unset, the configured
// default format.
func outputFormat(cmd *cobra.Command) string {
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		return format
	}
	return config.GetGlobalConfig().Output.DefaultFormat
}

func validateOutputFormat(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// precision is the number of decimals used for table output.
func precision() int {
	return config.GetGlobalConfig().Output.Precision
}

// isWriterTerminal reports whether w is a terminal. Buffers used in tests
// never are.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return tui.IsTerminal(f)
	}
	return false
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, tabPadChar, 0)
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderNDJSON[T any](w io.Writer, items []T) error {
	encoder := json.NewEncoder(w)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("encoding NDJSON line: %w", err)
		}
	}
	return nil
}
