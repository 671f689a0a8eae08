package detect

import "image"

// Kind identifies the layout family of a candidate.
type Kind string

const (
	// KindGrid is a uniform rows-by-columns tiling.
	KindGrid Kind = "grid"

	// KindHorizontalStrip is a single-row (or, for tall sheets, the
	// mirrored single-column) run of frames.
	KindHorizontalStrip Kind = "horizontal_strip"
)

// Candidate is one proposed uniform frame layout for a sheet.
//
// The tiling starts at (OffsetX, OffsetY), places Cols frames of
// FrameWidth separated by SpacingX per row, and Rows such rows separated
// by SpacingY. Invariants:
//
//	Cols*FrameWidth + (Cols-1)*SpacingX + OffsetX <= sheet width
//	Rows*FrameHeight + (Rows-1)*SpacingY + OffsetY <= sheet height
//	TotalFrames == Cols*Rows
type Candidate struct {
	// FrameWidth and FrameHeight are the dimensions of one frame in pixels.
	FrameWidth  int `json:"frame_width"`
	FrameHeight int `json:"frame_height"`

	// OffsetX and OffsetY are the top-left margin before the first frame.
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`

	// SpacingX and SpacingY are the gaps between adjacent frames.
	SpacingX int `json:"spacing_x"`
	SpacingY int `json:"spacing_y"`

	// Cols and Rows describe the grid shape; TotalFrames is their product.
	Cols        int `json:"cols"`
	Rows        int `json:"rows"`
	TotalFrames int `json:"total_frames"`

	// Kind distinguishes grid layouts from strip layouts.
	Kind Kind `json:"kind"`

	// Score is the plausibility score assigned by the scoring engine.
	// Higher is better.
	Score int `json:"score"`

	// Utilization is the fraction of sheet area covered by the tiled
	// frames, in [0, 1]. Exactly 1.0 when the frames tile the sheet with
	// no remainder.
	Utilization float64 `json:"utilization"`
}

// Frames returns the frame rectangles of the tiling in row-major order
// (left to right, top to bottom).
func (c Candidate) Frames() []image.Rectangle {
	rects := make([]image.Rectangle, 0, c.TotalFrames)
	for row := 0; row < c.Rows; row++ {
		y := c.OffsetY + row*(c.FrameHeight+c.SpacingY)
		for col := 0; col < c.Cols; col++ {
			x := c.OffsetX + col*(c.FrameWidth+c.SpacingX)
			rects = append(rects, image.Rect(x, y, x+c.FrameWidth, y+c.FrameHeight))
		}
	}
	return rects
}

// Cluster is one detected sprite in irregular mode: the union bounding box
// of one or more connected components merged by proximity.
//
// Box coordinates follow image convention: (X0, Y0) inclusive top-left,
// (X1, Y1) exclusive bottom-right.
type Cluster struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`

	// Area is the total foreground pixel area of the member components,
	// not the box area.
	Area int `json:"area"`

	// Members is the number of connected components merged into this
	// cluster.
	Members int `json:"members"`
}

// Bounds returns the cluster's bounding box as an image.Rectangle.
func (c Cluster) Bounds() image.Rectangle {
	return image.Rect(c.X0, c.Y0, c.X1, c.Y1)
}

// Result is the outcome of a grid-mode detection pass: every surviving
// candidate ranked best-first, with the top pick exposed separately.
// A Result is never mutated after it is returned.
type Result struct {
	// Candidates is the ranked list, best first.
	Candidates []Candidate `json:"candidates"`

	// Best is the top-ranked candidate (the "auto pick").
	Best Candidate `json:"best"`
}
