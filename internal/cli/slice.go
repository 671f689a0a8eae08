package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semmlerino/spritesplit/internal/detect"
	"github.com/semmlerino/spritesplit/internal/export"
	"github.com/semmlerino/spritesplit/internal/sheet"
)

// sliceOpts holds the command-line flags for the slice command.
type sliceOpts struct {
	root    *rootOpts
	detect  detectOpts
	sprites spritesOpts

	mode   string  // "grid" or "sprites"
	outDir string  // destination directory
	prefix string  // output file name prefix
	scale  float64 // resize factor applied to each frame
	format string  // output encoding
}

// newSliceCmd creates the slice command, which detects frames and writes
// each one to its own image file.
func newSliceCmd(root *rootOpts) *cobra.Command {
	opts := sliceOpts{root: root, detect: detectOpts{root: root}, sprites: spritesOpts{root: root, noiseArea: -1, proximity: -1}}

	cmd := &cobra.Command{
		Use:   "slice <sheet>",
		Short: "Cut detected frames into individual image files",
		Long: `Slice detects the frame layout of a sheet and writes every frame to its
own file, numbered in reading order.

Detection mode:
  grid     use the best-ranked uniform layout (default)
  sprites  use irregular per-sprite bounding boxes

Examples:
  spritesplit slice walk.png --out frames/
  spritesplit slice atlas.png --mode sprites --prefix sprite
  spritesplit slice walk.png --scale 2 --format jpeg`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSlice(c, &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "grid", "detection mode: grid or sprites")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (configured default if empty)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "output file prefix (configured default if empty)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "resize factor per frame (0 = configured default)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: png or jpeg (configured default if empty)")
	cmd.Flags().IntVar(&opts.detect.minFrames, "min-frames", 0, "lowest acceptable frame count in grid mode")
	cmd.Flags().IntVar(&opts.detect.maxFrames, "max-frames", 0, "highest acceptable frame count in grid mode")
	cmd.Flags().IntVar(&opts.sprites.noiseArea, "noise-area", -1, "minimum component area in sprites mode")
	cmd.Flags().IntVar(&opts.sprites.proximity, "proximity", -1, "merge distance in sprites mode")

	return cmd
}

func runSlice(cmd *cobra.Command, opts *sliceOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.root.loadConfig()
	if err != nil {
		return err
	}

	// Frames are cropped from the decoded image, so load it once through
	// the cache and share it with the Sheet.
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

	exp := export.Options{
		OutDir: cfg.Export.OutDir,
		Prefix: cfg.Export.Prefix,
		Scale:  cfg.Export.Scale,
		Format: cfg.Export.Format,
	}
	if opts.outDir != "" {
		exp.OutDir = opts.outDir
	}
	if opts.prefix != "" {
		exp.Prefix = opts.prefix
	}
	if opts.scale > 0 {
		exp.Scale = opts.scale
	}
	if opts.format != "" {
		exp.Format = opts.format
	}

	prog := newProgress(logger)

	var paths []string
	switch opts.mode {
	case "grid":
		res, err := detect.DetectGrid(sh, opts.detect.gridConfig(cfg))
		if err != nil {
			return err
		}
		logger.Debugf("Best layout %dx%d (%s, %d frames)",
			res.Best.FrameWidth, res.Best.FrameHeight, res.Best.Kind, res.Best.TotalFrames)
		paths, err = export.SliceGrid(img, res.Best, exp)
		if err != nil {
			return err
		}
	case "sprites":
		clusters, err := detect.DetectIrregular(sh, opts.sprites.irregularConfig(cfg))
		if err != nil {
			return err
		}
		paths, err = export.SliceClusters(img, clusters, exp)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q (want grid or sprites)", opts.mode)
	}

	prog.done(fmt.Sprintf("Wrote %d frames to %s", len(paths), exp.OutDir))
	return nil
}
