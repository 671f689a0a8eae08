package detect

// baseSizes is the fixed ascending list of base frame edge lengths the grid
// generator crosses with the canonical aspect ratios.
var baseSizes = []int{8, 12, 16, 20, 24, 32, 40, 48, 64, 80, 96, 128, 160, 192, 256}

// aspectRatios is the fixed list of canonical frame aspect ratios, as
// (width, height) multipliers applied to a base size.
var aspectRatios = [][2]int{
	{1, 1}, {1, 2}, {2, 1}, {2, 3}, {3, 2}, {3, 4}, {4, 3},
}

// generateGrid enumerates uniform grid layouts for a sheet of the given
// dimensions. The enumeration is exhaustive and fully deterministic:
// ascending base sizes crossed with the ratio list, no randomness, no
// early termination, so results are reproducible for a given sheet size.
//
// A combination survives when both frame dimensions fit the sheet and the
// resulting frame count is within [cfg.MinFrames, cfg.MaxFrames].
// Duplicate layouts (same frame size and grid shape reached through
// different base/ratio pairs) are emitted once, keeping first-emission
// order.
func generateGrid(sheetW, sheetH int, cfg GridConfig) []Candidate {
	type key struct {
		fw, fh, cols, rows int
	}
	seen := make(map[key]struct{})

	var out []Candidate
	for _, base := range baseSizes {
		for _, ratio := range aspectRatios {
			fw := base * ratio[0]
			fh := base * ratio[1]
			if fw > sheetW || fh > sheetH {
				continue
			}

			cols := sheetW / fw
			rows := sheetH / fh
			total := cols * rows
			if total < cfg.MinFrames || total > cfg.MaxFrames {
				continue
			}

			k := key{fw, fh, cols, rows}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}

			out = append(out, Candidate{
				FrameWidth:  fw,
				FrameHeight: fh,
				Cols:        cols,
				Rows:        rows,
				TotalFrames: total,
				Kind:        KindGrid,
				Utilization: float64(cols*fw*rows*fh) / float64(sheetW*sheetH),
			})
		}
	}
	return out
}
