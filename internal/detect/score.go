package detect

// Rule names one entry of the scoring weight table. Keeping the table as
// data (rule -> points) rather than scattered literals makes the ranking
// behavior auditable in one place and keeps regression tests honest.
type Rule string

const (
	RuleFrameCountReasonable Rule = "frame_count_reasonable"
	RuleFrameCountSweetSpot  Rule = "frame_count_sweet_spot"
	RuleDimensionMatch       Rule = "dimension_match"
	RuleDimensionMatchSwap   Rule = "dimension_match_swapped"
	RuleCleanDivisor         Rule = "clean_divisor"
	RuleSizeInRange          Rule = "size_in_range"
	RulePowerOfTwo           Rule = "power_of_two"
	RuleCommonSize           Rule = "common_size"
	RuleStrip                Rule = "strip"
	RuleStripCountIdeal      Rule = "strip_count_ideal"
	RuleStripCountCommon     Rule = "strip_count_common"
	RuleStripCountExtended   Rule = "strip_count_extended"
	RuleStripSquareFrame     Rule = "strip_square_frame"
	RuleAspectCanonical      Rule = "aspect_canonical"
	RuleAspectSquare         Rule = "aspect_square"
	RuleStripSingleLane      Rule = "strip_single_lane"
	RuleStripFewLanes        Rule = "strip_few_lanes"
	RuleGridBalanced         Rule = "grid_balanced"
	RuleGridMinimal          Rule = "grid_minimal"
	RuleGridDensePenalty     Rule = "grid_dense_penalty"
	RulePerfectTiling        Rule = "perfect_tiling"
)

// Weights is the immutable scoring table. The values are an exact contract,
// not tunable at runtime: the strip frame-count tiers and the deliberately
// small RuleStripSquareFrame bonus (30, not 60) exist so that a wide strip
// of many correctly sized frames outranks a single-row run of fewer large
// square frames. See TestScoreWideStripPrefersManyFrames.
var Weights = map[Rule]int{
	RuleFrameCountReasonable: 100,
	RuleFrameCountSweetSpot:  30,
	RuleDimensionMatch:       100,
	RuleDimensionMatchSwap:   80,
	RuleCleanDivisor:         60,
	RuleSizeInRange:          60,
	RulePowerOfTwo:           20,
	RuleCommonSize:           30,
	RuleStrip:                80,
	RuleStripCountIdeal:      60,
	RuleStripCountCommon:     40,
	RuleStripCountExtended:   20,
	RuleStripSquareFrame:     30,
	RuleAspectCanonical:      40,
	RuleAspectSquare:         25,
	RuleStripSingleLane:      60,
	RuleStripFewLanes:        30,
	RuleGridBalanced:         40,
	RuleGridMinimal:          20,
	RuleGridDensePenalty:     -30,
	RulePerfectTiling:        80,
}

// sweet spot and excess-count constants for the frame-count rules.
const (
	sweetSpotMin = 4
	sweetSpotMax = 32

	excessCountStart   = 50
	excessPenaltyCap   = 50
	excessPenaltyScale = 2
)

// Score assigns the plausibility score for a candidate layout on a sheet of
// the given dimensions. It is a pure function: no side effects, fully
// deterministic, and safe to call concurrently.
//
// The rules are additive over the Weights table; the only dynamic term is
// the excess-frame penalty, which scales with the overshoot past 50 frames
// and is capped at 50 points.
func Score(c Candidate, sheetW, sheetH int, cfg GridConfig) int {
	availW := sheetW - c.OffsetX
	availH := sheetH - c.OffsetY
	fw, fh := c.FrameWidth, c.FrameHeight
	strip := c.Kind == KindHorizontalStrip

	score := 0

	// Frame count.
	if c.TotalFrames >= cfg.MinFrames && c.TotalFrames <= cfg.MaxFrames {
		score += Weights[RuleFrameCountReasonable]
	}
	if c.TotalFrames >= sweetSpotMin && c.TotalFrames <= sweetSpotMax {
		score += Weights[RuleFrameCountSweetSpot]
	}
	if c.TotalFrames > excessCountStart && !strip {
		penalty := (c.TotalFrames - excessCountStart) * excessPenaltyScale
		if penalty > excessPenaltyCap {
			penalty = excessPenaltyCap
		}
		score -= penalty
	}

	// Dimension matching against the available sheet area.
	if fw == availW || fh == availH {
		score += Weights[RuleDimensionMatch]
	} else if fw == availH || fh == availW {
		score += Weights[RuleDimensionMatchSwap]
	}
	if availW%fw == 0 && availH%fh == 0 {
		score += Weights[RuleCleanDivisor]
	}

	// Size appropriateness.
	if fw >= 8 && fw <= 512 && fh >= 8 && fh <= 512 {
		score += Weights[RuleSizeInRange]
		if isPowerOfTwo(fw) && isPowerOfTwo(fh) {
			score += Weights[RulePowerOfTwo]
		}
		if isCommonSize(fw) || isCommonSize(fh) {
			score += Weights[RuleCommonSize]
		}
	}

	// Strip bonuses. The frame-count tiers are mutually exclusive.
	if strip {
		score += Weights[RuleStrip]
		switch {
		case c.TotalFrames >= 8 && c.TotalFrames <= 16:
			score += Weights[RuleStripCountIdeal]
		case c.TotalFrames >= 6 && c.TotalFrames <= 24:
			score += Weights[RuleStripCountCommon]
		case c.TotalFrames >= 4 && c.TotalFrames <= 32:
			score += Weights[RuleStripCountExtended]
		}
		if fw == fh && (fh == availH || fw == availW) {
			score += Weights[RuleStripSquareFrame]
		}
	}

	// Aspect ratio of the frame, reduced.
	rw, rh := reduceRatio(fw, fh)
	if isCanonicalRatio(rw, rh) {
		score += Weights[RuleAspectCanonical]
	} else if rw == rh {
		score += Weights[RuleAspectSquare]
	}

	// Layout shape.
	if strip {
		// For a tall sheet the strip runs down a single column, so the
		// lane count is the smaller grid axis either way.
		lanes := c.Rows
		if c.Cols < lanes {
			lanes = c.Cols
		}
		if lanes == 1 {
			score += Weights[RuleStripSingleLane]
		} else if lanes <= 3 {
			score += Weights[RuleStripFewLanes]
		}
	} else {
		if c.Cols >= 2 && c.Cols <= 8 && c.Rows >= 2 && c.Rows <= 8 {
			score += Weights[RuleGridBalanced]
		} else if c.Cols >= 2 && c.Rows >= 2 {
			score += Weights[RuleGridMinimal]
		}
		if c.Cols > 10 && c.Rows > 10 {
			score += Weights[RuleGridDensePenalty]
		}
	}

	// Perfect tiling: the candidate's own grid covers the available area
	// with no leftover band.
	if c.Cols*fw == availW && c.Rows*fh == availH {
		score += Weights[RulePerfectTiling]
	}

	return score
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func isCommonSize(n int) bool {
	for _, s := range commonStripSizes {
		if n == s {
			return true
		}
	}
	return false
}

func reduceRatio(w, h int) (int, int) {
	g := gcd(w, h)
	if g == 0 {
		return w, h
	}
	return w / g, h / g
}

func isCanonicalRatio(rw, rh int) bool {
	for _, r := range aspectRatios {
		if rw == r[0] && rh == r[1] {
			return true
		}
	}
	return false
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
