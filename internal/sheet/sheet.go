package sheet

import (
	"errors"
	"image"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidImage is returned when a sheet cannot be constructed from the
// given image, e.g. because one of its dimensions is zero.
var ErrInvalidImage = errors.New("invalid image")

// Options controls how background pixels are classified.
type Options struct {
	// AlphaThreshold is the highest alpha value (0-255) still considered
	// background. Pixels with alpha at or below this value are background.
	AlphaThreshold uint8

	// ColorTolerance is the maximum RGB distance (0.0 to ~1.7) between a
	// pixel and the sampled background key color for the pixel to count as
	// background. Only used for fully opaque sheets.
	ColorTolerance float64
}

// DefaultOptions returns the background classification defaults:
// alpha threshold 128, key color tolerance 0.02.
func DefaultOptions() Options {
	return Options{
		AlphaThreshold: 128,
		ColorTolerance: 0.02,
	}
}

// Sheet is a read-only view of a sprite sheet with a per-pixel background
// test. It borrows the underlying image; the caller must not mutate the
// image while the Sheet is in use.
//
// Background classification works in two modes:
//
//   - Transparency mode: pixels with alpha <= AlphaThreshold are background.
//     This is the common case for sprite sheets with an alpha channel.
//   - Key color mode: when the top-left pixel is opaque, its color is
//     sampled as the background key, and opaque pixels within ColorTolerance
//     of the key also count as background. This handles sheets exported
//     with a solid backdrop (e.g. magenta) instead of transparency.
//
// Sheet is safe for concurrent reads.
type Sheet struct {
	img  image.Image
	w, h int
	opts Options

	key      colorful.Color
	keyValid bool

	maskOnce sync.Once
	mask     []bool
}

// New wraps img in a Sheet. It returns ErrInvalidImage if either dimension
// is zero.
func New(img image.Image, opts Options) (*Sheet, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, ErrInvalidImage
	}

	s := &Sheet{img: img, w: w, h: h, opts: opts}

	// Sample the background key from the top-left pixel. The key is only
	// trusted when that pixel is opaque; on transparent sheets the corner
	// is background already and alpha classification suffices.
	r, g, b, a := img.At(bounds.Min.X, bounds.Min.Y).RGBA()
	if uint8(a>>8) > opts.AlphaThreshold {
		s.key = colorful.Color{
			R: float64(r) / 0xffff,
			G: float64(g) / 0xffff,
			B: float64(b) / 0xffff,
		}
		s.keyValid = true
	}

	return s, nil
}

// Width returns the sheet width in pixels.
func (s *Sheet) Width() int { return s.w }

// Height returns the sheet height in pixels.
func (s *Sheet) Height() int { return s.h }

// IsBackground reports whether the pixel at (x, y) is background.
// Coordinates are relative to the sheet's top-left corner; out-of-bounds
// coordinates are background.
func (s *Sheet) IsBackground(x, y int) bool {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return true
	}

	bounds := s.img.Bounds()
	r, g, b, a := s.img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

	if uint8(a>>8) <= s.opts.AlphaThreshold {
		return true
	}

	if s.keyValid {
		c := colorful.Color{
			R: float64(r) / 0xffff,
			G: float64(g) / 0xffff,
			B: float64(b) / 0xffff,
		}
		return c.DistanceRgb(s.key) <= s.opts.ColorTolerance
	}

	return false
}

// Mask returns the row-major background mask: mask[y*Width()+x] is true for
// background pixels. The mask is computed once and cached; callers must
// treat it as read-only.
func (s *Sheet) Mask() []bool {
	s.maskOnce.Do(func() {
		s.mask = make([]bool, s.w*s.h)
		for y := 0; y < s.h; y++ {
			for x := 0; x < s.w; x++ {
				s.mask[y*s.w+x] = s.IsBackground(x, y)
			}
		}
	})
	return s.mask
}
