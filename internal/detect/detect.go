package detect

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/semmlerino/spritesplit/internal/sheet"
)

// GridConfig carries the recognized options for grid-mode detection.
type GridConfig struct {
	// MinFrames and MaxFrames bound the acceptable total frame count of a
	// candidate layout.
	MinFrames int `json:"min_frames"`
	MaxFrames int `json:"max_frames"`

	// StripAspectThreshold is the width/height ratio (or its inverse for
	// tall sheets) beyond which strip candidates are also generated. The
	// value is empirically chosen; no derivation exists.
	StripAspectThreshold float64 `json:"strip_aspect_threshold"`
}

// DefaultGridConfig returns the documented grid-mode defaults.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		MinFrames:            2,
		MaxFrames:            200,
		StripAspectThreshold: 3.0,
	}
}

func (c GridConfig) validate() error {
	if c.MinFrames < 1 {
		return fmt.Errorf("%w: min_frames must be >= 1, got %d", ErrInvalidConfig, c.MinFrames)
	}
	if c.MaxFrames < c.MinFrames {
		return fmt.Errorf("%w: max_frames (%d) below min_frames (%d)", ErrInvalidConfig, c.MaxFrames, c.MinFrames)
	}
	if c.StripAspectThreshold <= 0 {
		return fmt.Errorf("%w: strip_aspect_threshold must be positive, got %g", ErrInvalidConfig, c.StripAspectThreshold)
	}
	return nil
}

// IrregularConfig carries the recognized options for irregular-mode
// detection.
type IrregularConfig struct {
	// NoiseAreaThreshold discards connected components whose pixel area is
	// below this value.
	NoiseAreaThreshold int `json:"noise_area_threshold"`

	// MergeProximityPx is the maximum gap, in pixels, between component
	// bounding boxes that still merges them into one sprite cluster. The
	// default (50) is empirical.
	MergeProximityPx int `json:"merge_proximity_px"`
}

// DefaultIrregularConfig returns the documented irregular-mode defaults.
func DefaultIrregularConfig() IrregularConfig {
	return IrregularConfig{
		NoiseAreaThreshold: 16,
		MergeProximityPx:   50,
	}
}

func (c IrregularConfig) validate() error {
	if c.NoiseAreaThreshold < 0 {
		return fmt.Errorf("%w: noise_area_threshold must be >= 0, got %d", ErrInvalidConfig, c.NoiseAreaThreshold)
	}
	if c.MergeProximityPx < 0 {
		return fmt.Errorf("%w: merge_proximity_px must be >= 0, got %d", ErrInvalidConfig, c.MergeProximityPx)
	}
	return nil
}

// DetectGrid infers uniform frame layouts for a sheet and returns every
// surviving candidate ranked best-first, plus the top pick.
//
// Grid candidates are always generated; strip candidates are added when
// the sheet's aspect ratio exceeds cfg.StripAspectThreshold. Every
// candidate is scored with the weight table, then the list is ordered by
// score descending, total frame count ascending, utilization descending,
// and finally frame dimensions, so two invocations on the same sheet and
// config return identical ranked lists.
//
// Scoring fans out over a small worker pool; each worker writes only its
// own candidate's score, so the parallelism does not affect the result.
//
// Returns ErrNoCandidates when the search space produces nothing within
// the frame-count bounds, and ErrInvalidConfig for out-of-bounds options.
// DetectGrid holds no state across calls.
func DetectGrid(s *sheet.Sheet, cfg GridConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w, h := s.Width(), s.Height()

	cands := generateGrid(w, h, cfg)
	if qualifiesAsStrip(w, h, cfg.StripAspectThreshold) {
		cands = append(cands, generateStrips(w, h, cfg)...)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: sheet %dx%d yields no layout with %d-%d frames",
			ErrNoCandidates, w, h, cfg.MinFrames, cfg.MaxFrames)
	}

	scoreAll(cands, w, h, cfg)

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.TotalFrames != b.TotalFrames {
			return a.TotalFrames < b.TotalFrames
		}
		if a.Utilization != b.Utilization {
			return a.Utilization > b.Utilization
		}
		if a.FrameWidth != b.FrameWidth {
			return a.FrameWidth < b.FrameWidth
		}
		return a.FrameHeight < b.FrameHeight
	})

	return &Result{Candidates: cands, Best: cands[0]}, nil
}

// scoreAll scores every candidate in place, fanning out over a bounded
// worker pool. Generation and the final sort stay on the calling
// goroutine.
func scoreAll(cands []Candidate, sheetW, sheetH int, cfg GridConfig) {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > len(cands) {
		workers = len(cands)
	}

	var wg sync.WaitGroup
	idx := make(chan int)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				cands[i].Score = Score(cands[i], sheetW, sheetH, cfg)
			}
		}()
	}
	for i := range cands {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

// DetectIrregular segments a sheet into per-sprite bounding boxes using
// connected-component labeling over the background mask, for sheets whose
// sprites are packed without a uniform grid.
//
// Components below cfg.NoiseAreaThreshold are discarded; the survivors are
// merged by bounding-box proximity and returned in reading order. The
// cluster list is the accepted layout; there is no ranking step because
// clusters are per-sprite facts, not competing hypotheses.
//
// Returns ErrNoForeground when no component survives (fully transparent
// sheet, or fully opaque sheet with no background key), and
// ErrInvalidConfig for out-of-bounds options.
func DetectIrregular(s *sheet.Sheet, cfg IrregularConfig) ([]Cluster, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w, h := s.Width(), s.Height()
	comps := labelComponents(s.Mask(), w, h)

	kept := comps[:0]
	for _, c := range comps {
		if c.area >= cfg.NoiseAreaThreshold {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: sheet %dx%d has no non-background regions above %d px",
			ErrNoForeground, w, h, cfg.NoiseAreaThreshold)
	}

	return mergeComponents(kept, cfg.MergeProximityPx), nil
}
