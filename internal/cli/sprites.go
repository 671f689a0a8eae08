package cli

import (
	"fmt"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"github.com/semmlerino/spritesplit/internal/config"
	"github.com/semmlerino/spritesplit/internal/detect"
	"github.com/semmlerino/spritesplit/internal/export"
	"github.com/semmlerino/spritesplit/internal/sheet"
)

// spritesOpts holds the command-line flags for the sprites command.
type spritesOpts struct {
	root *rootOpts

	noiseArea int    // minimum component area, -1 keeps the configured value
	proximity int    // merge distance in pixels, -1 keeps the configured value
	output    string // output file path (stdout if empty)
	preview   string // preview image path (no preview if empty)
}

func (o *spritesOpts) irregularConfig(cfg config.Config) detect.IrregularConfig {
	ic := cfg.IrregularConfig()
	if o.noiseArea >= 0 {
		ic.NoiseAreaThreshold = o.noiseArea
	}
	if o.proximity >= 0 {
		ic.MergeProximityPx = o.proximity
	}
	return ic
}

// newSpritesCmd creates the sprites command, which segments irregularly
// packed sheets into per-sprite bounding boxes.
func newSpritesCmd(root *rootOpts) *cobra.Command {
	opts := spritesOpts{root: root}

	cmd := &cobra.Command{
		Use:   "sprites <sheet>",
		Short: "Segment an irregularly packed sheet into per-sprite boxes",
		Long: `Sprites finds individual sprites on sheets without a uniform grid by
grouping connected foreground pixels and merging nearby groups.

Examples:
  spritesplit sprites atlas.png
  spritesplit sprites atlas.png --proximity 10 -o sprites.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSprites(c, &opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.noiseArea, "noise-area", -1, "minimum component area in pixels (-1 = configured default)")
	cmd.Flags().IntVar(&opts.proximity, "proximity", -1, "merge distance between sprite parts in pixels (-1 = configured default)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.preview, "preview", "", "write a PNG with every sprite box outlined")

	return cmd
}

func runSprites(cmd *cobra.Command, opts *spritesOpts, path string) error {
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
	clusters, err := detect.DetectIrregular(sh, opts.irregularConfig(cfg))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d sprites", len(clusters)))

	if opts.preview != "" {
		overlay := export.PreviewClusters(img, clusters, "")
		if err := imgio.Save(opts.preview, overlay, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		logger.Infof("Wrote preview to %s", opts.preview)
	}

	return writeJSON(clusters, opts.output, logger)
}
