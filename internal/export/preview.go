package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/semmlerino/spritesplit/internal/detect"
)

// defaultOutlineColor is semi-transparent red, readable on most sheets.
var defaultOutlineColor = color.RGBA{R: 255, A: 200}

// PreviewGrid renders the sheet with every frame of the candidate
// outlined, for visually verifying a detected layout before slicing.
// colorHex selects the outline color ("#FF0000" or "#FF0000C8"); an
// unparseable value falls back to semi-transparent red.
func PreviewGrid(img image.Image, c detect.Candidate, colorHex string) *image.RGBA {
	return previewRects(img, c.Frames(), colorHex)
}

// PreviewClusters renders the sheet with every cluster's bounding box
// outlined.
func PreviewClusters(img image.Image, clusters []detect.Cluster, colorHex string) *image.RGBA {
	rects := make([]image.Rectangle, len(clusters))
	for i, cl := range clusters {
		rects[i] = cl.Bounds()
	}
	return previewRects(img, rects, colorHex)
}

func previewRects(img image.Image, rects []image.Rectangle, colorHex string) *image.RGBA {
	outline, err := parseHexColor(colorHex)
	if err != nil {
		outline = defaultOutlineColor
	}

	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	for _, r := range rects {
		drawOutline(out, r, outline)
	}
	return out
}

// drawOutline traces the rectangle's border. The right and bottom edges
// sit on the last pixel inside the box, so adjacent frames share a
// visible boundary line.
func drawOutline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
