// Package detect infers frame layouts in sprite sheets.
//
// This package implements two complementary detection modes. Grid mode
// hypothesizes uniform layouts (regular grids and single-lane strips),
// scores each hypothesis against a fixed weight table, and returns the
// candidates ranked best-first. Irregular mode segments the sheet into
// per-sprite bounding boxes using connected-component labeling, for
// sheets whose sprites are packed without any uniform cell size.
//
// # Grid Mode Pipeline
//
//  1. Generation: enumerate frame sizes from a base-size and aspect-ratio
//     cross product (and strip partitions when the sheet is elongated)
//  2. Scoring: apply the additive weight table to each candidate
//  3. Ranking: order by score, then frame count, utilization, and frame
//     dimensions, so equal inputs always produce equal rankings
//
// Detection is heuristic. The score expresses how plausible a layout is
// for a typical sprite sheet, not a proof that the sheet uses it; callers
// should treat the ranked list as suggestions and let a user confirm.
//
// # Irregular Mode Pipeline
//
//  1. Mask: classify every pixel as background or foreground (see the
//     sheet package)
//  2. Labeling: group foreground pixels into 4-connected components
//  3. Filtering: drop components below the noise area threshold
//  4. Merging: union components whose bounding boxes lie within the
//     proximity distance, to a fixed point
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Determinism
//
// Both modes are fully deterministic for a given sheet and configuration.
// Grid-mode scoring fans out over a worker pool, but each score depends
// only on its own candidate, so concurrency never changes the result.
package detect
