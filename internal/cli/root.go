package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ecoshare CLI. It wires
// up logging and tracing and registers the impact, summary, milestones, serve
// and config command groups.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "ecoshare",
		Short:        "Environmental impact of shared donations",
		Long:         "ecoshare: calculate and aggregate the waste, CO2 and water saved by donation exchanges",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if format, _ := cmd.Flags().GetString("output"); format != "" {
				if err := validateOutputFormat(format); err != nil {
					return err
				}
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or ndjson (default from config)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the report cache")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")

	cmd.AddCommand(
		newImpactCmd(),
		newSummaryCmd(ver),
		NewMilestonesCmd(),
		NewServeCmd(ver),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Impact of donating 2 kg of meat
  ecoshare impact food --category meat --weight 2

  # Impact of giving away two pieces of furniture
  ecoshare impact non-food --category furniture --quantity 2

  # Mark exported transactions complete and attach their impact
  ecoshare impact complete --input listings.json --out completed.json

  # Personal summary with milestones
  ecoshare summary user --input completed.json --donor alice

  # Community leaderboard in an interactive table
  ecoshare summary community --input completed.json --tui

  # Serve the HTTP API
  ecoshare serve --addr :8080

  # Initialize configuration
  ecoshare config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
