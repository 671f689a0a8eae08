// Package export writes detected frames to disk as individual images.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/semmlerino/spritesplit/internal/detect"
)

// Options controls how frames are written.
type Options struct {
	// OutDir is the destination directory. It is created if missing.
	OutDir string

	// Prefix names the output files: <prefix>_000.png, <prefix>_001.png,
	// and so on, in frame order. Empty means "frame".
	Prefix string

	// Scale resizes each frame by this factor before saving. Values of 0
	// or 1 leave frames untouched. Upscaling uses Lanczos resampling.
	Scale float64

	// Format selects the output encoding: "png" (default) or "jpeg".
	Format string
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return "frame"
	}
	return o.Prefix
}

func (o Options) encoder() (imgio.Encoder, string, error) {
	switch strings.ToLower(o.Format) {
	case "", "png":
		return imgio.PNGEncoder(), "png", nil
	case "jpg", "jpeg":
		return imgio.JPEGEncoder(90), "jpg", nil
	default:
		return nil, "", fmt.Errorf("unsupported output format %q", o.Format)
	}
}

// SliceGrid crops every frame of a grid-mode candidate out of the sheet
// image and writes them to opts.OutDir in row-major order. It returns the
// written file paths, in frame order.
//
// Frames that extend past the image bounds abort the export before any
// file is written.
func SliceGrid(img image.Image, c detect.Candidate, opts Options) ([]string, error) {
	return writeFrames(img, c.Frames(), opts)
}

// SliceClusters crops every cluster's bounding box out of the sheet image
// and writes them to opts.OutDir in reading order. It returns the written
// file paths, in cluster order.
func SliceClusters(img image.Image, clusters []detect.Cluster, opts Options) ([]string, error) {
	rects := make([]image.Rectangle, len(clusters))
	for i, cl := range clusters {
		rects[i] = cl.Bounds()
	}
	return writeFrames(img, rects, opts)
}

func writeFrames(img image.Image, rects []image.Rectangle, opts Options) ([]string, error) {
	if len(rects) == 0 {
		return nil, fmt.Errorf("no frames to export")
	}

	// The detector works in sheet coordinates with the origin at the
	// top-left corner; translate to the image's own bounds.
	bounds := img.Bounds()
	sheetBox := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	for i, r := range rects {
		if !r.In(sheetBox) {
			return nil, fmt.Errorf("frame %d (%v) outside sheet bounds %v", i, r, sheetBox)
		}
	}

	enc, ext, err := opts.encoder()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(rects))
	for i, r := range rects {
		frame := imaging.Crop(img, r.Add(bounds.Min))
		if opts.Scale > 0 && opts.Scale != 1.0 {
			w := int(float64(frame.Bounds().Dx()) * opts.Scale)
			h := int(float64(frame.Bounds().Dy()) * opts.Scale)
			frame = imaging.Resize(frame, w, h, imaging.Lanczos)
		}

		path := filepath.Join(opts.OutDir, fmt.Sprintf("%s_%03d.%s", opts.prefix(), i, ext))
		if err := imgio.Save(path, frame, enc); err != nil {
			return nil, fmt.Errorf("failed to save frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
