package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/semmlerino/spritesplit/internal/server"
)

// newServeCmd creates the serve command, which runs the HTTP detection
// server until interrupted.
func newServeCmd(root *rootOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP detection server",
		Long: `Serve exposes sheet detection over HTTP.

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  spritesplit serve
  spritesplit serve --addr :9090
  spritesplit serve --config spritesplit.toml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, loggerFromContext(c.Context())).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (configured default if empty)")

	return cmd
}
