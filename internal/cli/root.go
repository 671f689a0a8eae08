package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/semmlerino/spritesplit/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// typically called by the main package with values injected via ldflags
// at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds flags shared by every command.
type rootOpts struct {
	configPath string // TOML config file, empty for built-in defaults
}

// loadConfig reads the configured TOML file, or the defaults when no file
// was named.
func (o *rootOpts) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}

// Execute runs the spritesplit CLI and returns an error if any command
// fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute() error {
	var verbose bool
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "spritesplit",
		Short:        "spritesplit detects and slices frames in sprite sheets",
		Long:         `spritesplit analyzes sprite sheet images, infers how they are divided into frames (uniform grids, animation strips, or irregularly packed sprites), and can slice the detected frames into individual files.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("spritesplit %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file (built-in defaults if empty)")

	root.AddCommand(newDetectCmd(opts))
	root.AddCommand(newSpritesCmd(opts))
	root.AddCommand(newSliceCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root.ExecuteContext(context.Background())
}
