package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/api"
	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/logging"
	"github.com/rshade/ecoshare/pkg/version"
)

// NewServeCmd creates the serve command that exposes the calculators and
// aggregators over HTTP.
func NewServeCmd(ver string) *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the impact API over HTTP",
		Long: `Starts an HTTP server exposing the impact calculators, milestone lookup and
user and community summaries under /v1. The server stops gracefully on
SIGINT or SIGTERM.`,
		Example: `  # Listen on the configured address
  ecoshare serve

  # Listen on port 9090 and allow one browser origin
  ecoshare serve --addr :9090 --allowed-origin https://app.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if len(origins) == 0 {
				origins = cfg.Server.AllowedOrigins
			}

			debug, _ := cmd.Flags().GetBool("debug")
			api.SetMode(debug)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, addr, api.Config{
				Logger:         logging.ComponentLogger(logger, "api"),
				AllowedOrigins: origins,
				Version:        ver,
				Development:    version.IsDevelopment(),
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringSliceVar(&origins, "allowed-origin", nil, "CORS origin to allow; repeatable (default: all)")

	return cmd
}

func runServe(ctx context.Context, addr string, cfg api.Config) error {
	srv := api.NewServer(addr, api.NewRouter(cfg))
	return srv.ListenAndServe(ctx)
}
