// Package config loads spritesplit settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/semmlerino/spritesplit/internal/detect"
	"github.com/semmlerino/spritesplit/internal/sheet"
)

// ErrInvalid is returned when a configuration file parses but carries
// out-of-range values.
var ErrInvalid = errors.New("invalid configuration")

// maxTotalFrames caps grid.max_frames, the count a 2048x2048 sheet of
// minimal 8px frames could hold. Anything above it is almost certainly a
// typo.
const maxTotalFrames = 65536

// Config is the full configuration tree. Zero values are filled in from
// Default() during Load, so TOML files only need to name the settings they
// change.
type Config struct {
	Grid      GridSection      `toml:"grid"`
	Irregular IrregularSection `toml:"irregular"`
	Sheet     SheetSection     `toml:"sheet"`
	Export    ExportSection    `toml:"export"`
	Server    ServerSection    `toml:"server"`
}

// GridSection configures grid-mode detection.
type GridSection struct {
	MinFrames            int     `toml:"min_frames"`
	MaxFrames            int     `toml:"max_frames"`
	StripAspectThreshold float64 `toml:"strip_aspect_threshold"`
}

// IrregularSection configures irregular-mode detection.
type IrregularSection struct {
	NoiseAreaThreshold int `toml:"noise_area_threshold"`
	MergeProximityPx   int `toml:"merge_proximity_px"`
}

// SheetSection configures background classification.
type SheetSection struct {
	AlphaThreshold int     `toml:"alpha_threshold"`
	ColorTolerance float64 `toml:"color_tolerance"`
}

// ExportSection configures frame slicing output.
type ExportSection struct {
	OutDir string  `toml:"out_dir"`
	Prefix string  `toml:"prefix"`
	Scale  float64 `toml:"scale"`
	Format string  `toml:"format"`
}

// ServerSection configures the HTTP server.
type ServerSection struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	grid := detect.DefaultGridConfig()
	irr := detect.DefaultIrregularConfig()
	opts := sheet.DefaultOptions()
	return Config{
		Grid: GridSection{
			MinFrames:            grid.MinFrames,
			MaxFrames:            grid.MaxFrames,
			StripAspectThreshold: grid.StripAspectThreshold,
		},
		Irregular: IrregularSection{
			NoiseAreaThreshold: irr.NoiseAreaThreshold,
			MergeProximityPx:   irr.MergeProximityPx,
		},
		Sheet: SheetSection{
			AlphaThreshold: int(opts.AlphaThreshold),
			ColorTolerance: opts.ColorTolerance,
		},
		Export: ExportSection{
			OutDir: "frames",
			Prefix: "frame",
			Scale:  1.0,
			Format: "png",
		},
		Server: ServerSection{
			Addr: ":8080",
		},
	}
}

// Load reads the TOML file at path and merges it over the defaults. An
// empty path returns the defaults unchanged. The result is validated
// before it is returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section for out-of-range values, wrapping
// ErrInvalid so callers can classify the failure.
func (c Config) Validate() error {
	if c.Grid.MinFrames < 1 {
		return fmt.Errorf("%w: grid.min_frames must be >= 1, got %d", ErrInvalid, c.Grid.MinFrames)
	}
	if c.Grid.MaxFrames < c.Grid.MinFrames {
		return fmt.Errorf("%w: grid.max_frames (%d) below grid.min_frames (%d)",
			ErrInvalid, c.Grid.MaxFrames, c.Grid.MinFrames)
	}
	if c.Grid.MaxFrames > maxTotalFrames {
		return fmt.Errorf("%w: grid.max_frames %d is unreasonably large", ErrInvalid, c.Grid.MaxFrames)
	}
	if c.Grid.StripAspectThreshold <= 0 {
		return fmt.Errorf("%w: grid.strip_aspect_threshold must be positive, got %g",
			ErrInvalid, c.Grid.StripAspectThreshold)
	}
	if c.Irregular.NoiseAreaThreshold < 0 {
		return fmt.Errorf("%w: irregular.noise_area_threshold must be >= 0, got %d",
			ErrInvalid, c.Irregular.NoiseAreaThreshold)
	}
	if c.Irregular.MergeProximityPx < 0 {
		return fmt.Errorf("%w: irregular.merge_proximity_px must be >= 0, got %d",
			ErrInvalid, c.Irregular.MergeProximityPx)
	}
	if c.Sheet.AlphaThreshold < 0 || c.Sheet.AlphaThreshold > 255 {
		return fmt.Errorf("%w: sheet.alpha_threshold must be in [0, 255], got %d",
			ErrInvalid, c.Sheet.AlphaThreshold)
	}
	if c.Sheet.ColorTolerance < 0 {
		return fmt.Errorf("%w: sheet.color_tolerance must be >= 0, got %g",
			ErrInvalid, c.Sheet.ColorTolerance)
	}
	if c.Export.Scale < 0 {
		return fmt.Errorf("%w: export.scale must be >= 0, got %g", ErrInvalid, c.Export.Scale)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalid)
	}
	return nil
}

// GridConfig converts the grid section into detector options.
func (c Config) GridConfig() detect.GridConfig {
	return detect.GridConfig{
		MinFrames:            c.Grid.MinFrames,
		MaxFrames:            c.Grid.MaxFrames,
		StripAspectThreshold: c.Grid.StripAspectThreshold,
	}
}

// IrregularConfig converts the irregular section into detector options.
func (c Config) IrregularConfig() detect.IrregularConfig {
	return detect.IrregularConfig{
		NoiseAreaThreshold: c.Irregular.NoiseAreaThreshold,
		MergeProximityPx:   c.Irregular.MergeProximityPx,
	}
}

// SheetOptions converts the sheet section into background classification
// options.
func (c Config) SheetOptions() sheet.Options {
	return sheet.Options{
		AlphaThreshold: uint8(c.Sheet.AlphaThreshold),
		ColorTolerance: c.Sheet.ColorTolerance,
	}
}
