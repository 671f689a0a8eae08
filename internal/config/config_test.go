package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spritesplit.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[grid]
max_frames = 64

[export]
prefix = "anim"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Grid.MaxFrames != 64 {
		t.Errorf("grid.max_frames = %d, want 64", cfg.Grid.MaxFrames)
	}
	if cfg.Grid.MinFrames != Default().Grid.MinFrames {
		t.Errorf("grid.min_frames = %d, want default %d", cfg.Grid.MinFrames, Default().Grid.MinFrames)
	}
	if cfg.Export.Prefix != "anim" {
		t.Errorf("export.prefix = %q, want anim", cfg.Export.Prefix)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q, want default :8080", cfg.Server.Addr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[grid\nmin_frames = ")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_min_frames", func(c *Config) { c.Grid.MinFrames = 0 }},
		{"max_below_min", func(c *Config) { c.Grid.MaxFrames = 1; c.Grid.MinFrames = 2 }},
		{"negative_threshold", func(c *Config) { c.Grid.StripAspectThreshold = -1 }},
		{"negative_noise", func(c *Config) { c.Irregular.NoiseAreaThreshold = -1 }},
		{"negative_proximity", func(c *Config) { c.Irregular.MergeProximityPx = -5 }},
		{"alpha_out_of_range", func(c *Config) { c.Sheet.AlphaThreshold = 300 }},
		{"negative_tolerance", func(c *Config) { c.Sheet.ColorTolerance = -0.1 }},
		{"negative_scale", func(c *Config) { c.Export.Scale = -2 }},
		{"empty_addr", func(c *Config) { c.Server.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()

	grid := cfg.GridConfig()
	if grid.MinFrames != cfg.Grid.MinFrames || grid.MaxFrames != cfg.Grid.MaxFrames {
		t.Errorf("GridConfig mismatch: %+v vs %+v", grid, cfg.Grid)
	}

	irr := cfg.IrregularConfig()
	if irr.NoiseAreaThreshold != cfg.Irregular.NoiseAreaThreshold {
		t.Errorf("IrregularConfig mismatch: %+v vs %+v", irr, cfg.Irregular)
	}

	opts := cfg.SheetOptions()
	if int(opts.AlphaThreshold) != cfg.Sheet.AlphaThreshold {
		t.Errorf("SheetOptions mismatch: %+v vs %+v", opts, cfg.Sheet)
	}
}
