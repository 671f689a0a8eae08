package detect

import "errors"

// Sentinel errors for detection failures. All are recoverable at the call
// site; detection never returns partial results alongside an error.
var (
	// ErrNoCandidates is returned by DetectGrid when the search space
	// produced no layout within the configured frame-count bounds, e.g.
	// for a sheet smaller than the smallest base frame size.
	ErrNoCandidates = errors.New("no candidates found")

	// ErrNoForeground is returned by DetectIrregular when no connected
	// component survives noise filtering: the sheet is fully background,
	// or fully opaque with no usable background key.
	ErrNoForeground = errors.New("no foreground detected")

	// ErrInvalidConfig is returned when caller-supplied configuration is
	// outside documented bounds, e.g. negative thresholds or an inverted
	// frame-count range.
	ErrInvalidConfig = errors.New("invalid configuration")
)
