package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads $ECOSHARE_HOME/config.yaml with .env and ECOSHARE_* overrides applied
and checks it for syntax and semantic errors.`,
		Example: `  # Validate current configuration
  ecoshare config validate

  # Validate and show detailed information
  ecoshare config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			cmd.Printf("Configuration is valid\n")
			if verbose {
				printVerboseDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Cache enabled: %t (ttl %ds)\n", cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	cmd.Printf("  Cache directory: %s\n", cfg.Cache.Directory)
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	if len(cfg.Server.AllowedOrigins) > 0 {
		cmd.Printf("  Allowed origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	}
}
