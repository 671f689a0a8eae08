package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/semmlerino/spritesplit/internal/config"
	"github.com/semmlerino/spritesplit/internal/detect"
	"github.com/semmlerino/spritesplit/internal/export"
	"github.com/semmlerino/spritesplit/internal/sheet"
)

// detectOpts holds the command-line flags for the detect command.
type detectOpts struct {
	root *rootOpts

	minFrames      int     // lowest acceptable frame count
	maxFrames      int     // highest acceptable frame count
	stripThreshold float64 // aspect ratio beyond which strips are tried
	all            bool    // print the full ranking, not just the best
	output         string  // output file path (stdout if empty)
	preview        string  // preview image path (no preview if empty)
}

// gridConfig merges the flag overrides over the loaded configuration.
// A flag left at its zero value keeps the configured setting.
func (o *detectOpts) gridConfig(cfg config.Config) detect.GridConfig {
	gc := cfg.GridConfig()
	if o.minFrames > 0 {
		gc.MinFrames = o.minFrames
	}
	if o.maxFrames > 0 {
		gc.MaxFrames = o.maxFrames
	}
	if o.stripThreshold > 0 {
		gc.StripAspectThreshold = o.stripThreshold
	}
	return gc
}

// newDetectCmd creates the detect command, which ranks uniform layouts
// for a sheet and prints the result as JSON.
func newDetectCmd(root *rootOpts) *cobra.Command {
	opts := detectOpts{root: root}

	cmd := &cobra.Command{
		Use:   "detect <sheet>",
		Short: "Rank uniform grid and strip layouts for a sprite sheet",
		Long: `Detect analyzes a sprite sheet and ranks plausible uniform frame layouts.

The best layout is printed as JSON; --all includes the full ranking.

Examples:
  spritesplit detect walk.png
  spritesplit detect walk.png --all -o layouts.json
  spritesplit detect strip.png --max-frames 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDetect(c, &opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.minFrames, "min-frames", 0, "lowest acceptable frame count (0 = configured default)")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 0, "highest acceptable frame count (0 = configured default)")
	cmd.Flags().Float64Var(&opts.stripThreshold, "strip-threshold", 0, "sheet aspect ratio that triggers strip candidates (0 = configured default)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "print every ranked candidate, not just the best")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "write a PNG with the best layout outlined")

	return cmd
}

func runDetect(cmd *cobra.Command, opts *detectOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.root.loadConfig()
	if err != nil {
		return err
	}

	cache := sheet.NewCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	sh, err := sheet.New(img, cfg.SheetOptions())
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s (%dx%d)", path, sh.Width(), sh.Height())

	prog := newProgress(logger)
	res, err := detect.DetectGrid(sh, opts.gridConfig(cfg))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d layouts, best %dx%d (%s, %d frames)",
		len(res.Candidates), res.Best.FrameWidth, res.Best.FrameHeight,
		res.Best.Kind, res.Best.TotalFrames))

	if opts.preview != "" {
		overlay := export.PreviewGrid(img, res.Best, "")
		if err := imgio.Save(opts.preview, overlay, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		logger.Infof("Wrote preview to %s", opts.preview)
	}

	if opts.all {
		return writeJSON(res, opts.output, logger)
	}
	return writeJSON(res.Best, opts.output, logger)
}

// writeJSON serializes v as indented JSON to the specified path, or
// stdout if the path is empty.
func writeJSON(v any, path string, logger *log.Logger) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
