package sheet

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small RGBA PNG into dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return path
}

func TestCache_Load(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "sheet.png", 32, 16)
	cache := NewCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("got %dx%d, want 32x16", b.Dx(), b.Dy())
	}

	// Second load must come from the cache: delete the file and reload.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached load after file removal failed: %v", err)
	}
}

func TestCache_LoadMissingFile(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCache_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	cache := NewCache()
	_, err := cache.Load(path)
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("got %v, want ErrInvalidImage", err)
	}
}

func TestCache_ClearAndEvict(t *testing.T) {
	dir := t.TempDir()
	a := writeTestPNG(t, dir, "a.png", 8, 8)
	b := writeTestPNG(t, dir, "b.png", 8, 8)

	cache := NewCache()
	if _, err := cache.Load(a); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := cache.Load(b); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(a)
	if err := os.Remove(a); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}
	if _, err := cache.Load(a); err == nil {
		t.Error("evicted entry should force a disk read and fail")
	}

	cache.Clear()
	if err := os.Remove(b); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}
	if _, err := cache.Load(b); err == nil {
		t.Error("cleared cache should force a disk read and fail")
	}
}

func TestCache_LoadSheet(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "sheet.png", 64, 48)

	s, err := NewCache().LoadSheet(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	if s.Width() != 64 || s.Height() != 48 {
		t.Errorf("got %dx%d, want 64x48", s.Width(), s.Height())
	}
}

func TestCache_LoadInfo(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "sheet.png", 40, 30)

	info, err := NewCache().LoadInfo(path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Width != 40 || info.Height != 30 {
		t.Errorf("got %dx%d, want 40x30", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format %q, want png", info.Format)
	}
	if !info.HasAlpha {
		t.Error("PNG decoded as RGBA should report an alpha channel")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size %d, want > 0", info.FileSizeBytes)
	}
}
