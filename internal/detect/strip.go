package detect

// commonStripSizes is the fixed list of frame edge lengths tried by the
// strip generator's common-size method.
var commonStripSizes = []int{16, 24, 32, 48, 64, 96, 128, 160, 192, 256}

// stripFrameMin and stripFrameMax bound the frame edge produced by the
// division method.
const (
	stripFrameMin = 16
	stripFrameMax = 512

	stripDivisionMaxFrames = 20
)

// qualifiesAsStrip reports whether the sheet's aspect ratio is extreme
// enough for strip generation: wider than threshold, or the symmetric
// inverse for tall sheets.
func qualifiesAsStrip(sheetW, sheetH int, threshold float64) bool {
	w, h := float64(sheetW), float64(sheetH)
	return w/h > threshold || h/w > threshold
}

// generateStrips enumerates single-row candidates for wide sheets, or the
// mirrored single-column candidates for tall sheets. Two independent
// methods contribute:
//
//   - Division: for n in [2, 20], if the long edge divides evenly into n
//     frames of an edge between 16 and 512 pixels, emit that layout.
//   - Common size: for each well-known sprite edge that fits both sheet
//     dimensions, emit as many full-height (or full-width) frames of that
//     edge as fit, when at least 2 fit.
//
// The methods may emit overlapping candidates; no deduplication is done
// here because scoring ranks equivalent layouts identically.
func generateStrips(sheetW, sheetH int, cfg GridConfig) []Candidate {
	if sheetH > sheetW {
		return stripCandidates(sheetH, sheetW, cfg, true)
	}
	return stripCandidates(sheetW, sheetH, cfg, false)
}

// stripCandidates runs both strip methods along a sheet whose long edge is
// long and short edge is short. When vertical is true the sheet is tall
// and the emitted layouts are transposed into single-column form.
func stripCandidates(long, short int, cfg GridConfig, vertical bool) []Candidate {
	var out []Candidate

	emit := func(frameLong, count int) {
		c := Candidate{
			Kind:        KindHorizontalStrip,
			TotalFrames: count,
			Utilization: float64(count*frameLong*short) / float64(long*short),
		}
		if vertical {
			c.FrameWidth = short
			c.FrameHeight = frameLong
			c.Cols = 1
			c.Rows = count
		} else {
			c.FrameWidth = frameLong
			c.FrameHeight = short
			c.Cols = count
			c.Rows = 1
		}
		out = append(out, c)
	}

	// Division method: exact partitions of the long edge.
	for n := 2; n <= stripDivisionMaxFrames; n++ {
		if long%n != 0 {
			continue
		}
		frame := long / n
		if frame < stripFrameMin || frame > stripFrameMax {
			continue
		}
		emit(frame, n)
	}

	// Common-size method: well-known frame edges with the full short edge.
	for _, size := range commonStripSizes {
		if size > short || size > long {
			continue
		}
		n := long / size
		if n < 2 || n > cfg.MaxFrames {
			continue
		}
		emit(size, n)
	}

	return out
}
