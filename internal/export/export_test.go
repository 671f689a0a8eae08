package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/semmlerino/spritesplit/internal/detect"
)

// checkerSheet builds an image whose top-left pixel of each 32x32 cell
// carries the cell index in the red channel, so crops can be verified.
func checkerSheet(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	idx := 0
	for y := 0; y < h; y += 32 {
		for x := 0; x < w; x += 32 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(idx), A: 255})
			idx++
		}
	}
	return img
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
	return img
}

func TestSliceGrid(t *testing.T) {
	dir := t.TempDir()
	img := checkerSheet(96, 64)

	cand := detect.Candidate{
		FrameWidth: 32, FrameHeight: 32,
		Cols: 3, Rows: 2, TotalFrames: 6,
		Kind: detect.KindGrid,
	}

	paths, err := SliceGrid(img, cand, Options{OutDir: dir})
	if err != nil {
		t.Fatalf("SliceGrid failed: %v", err)
	}
	if len(paths) != 6 {
		t.Fatalf("got %d files, want 6", len(paths))
	}

	for i, path := range paths {
		want := filepath.Join(dir, map[int]string{
			0: "frame_000.png", 1: "frame_001.png", 2: "frame_002.png",
			3: "frame_003.png", 4: "frame_004.png", 5: "frame_005.png",
		}[i])
		if path != want {
			t.Errorf("file %d: path %s, want %s", i, path, want)
		}

		frame := decodePNG(t, path)
		if b := frame.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("frame %d: %dx%d, want 32x32", i, b.Dx(), b.Dy())
		}
		// The marker pixel identifies which cell was cropped, proving
		// row-major order.
		r, _, _, _ := frame.At(frame.Bounds().Min.X, frame.Bounds().Min.Y).RGBA()
		if uint8(r>>8) != uint8(i) {
			t.Errorf("frame %d: marker %d, want %d", i, uint8(r>>8), i)
		}
	}
}

func TestSliceGrid_OutOfBounds(t *testing.T) {
	img := checkerSheet(64, 64)
	cand := detect.Candidate{
		FrameWidth: 48, FrameHeight: 48,
		Cols: 2, Rows: 1, TotalFrames: 2, // 2x48 = 96 > 64
		Kind: detect.KindGrid,
	}

	if _, err := SliceGrid(img, cand, Options{OutDir: t.TempDir()}); err == nil {
		t.Error("expected error for frames escaping the sheet")
	}
}

func TestSliceGrid_Scale(t *testing.T) {
	paths, err := SliceGrid(checkerSheet(64, 32), detect.Candidate{
		FrameWidth: 32, FrameHeight: 32,
		Cols: 2, Rows: 1, TotalFrames: 2,
		Kind: detect.KindGrid,
	}, Options{OutDir: t.TempDir(), Scale: 2.0})
	if err != nil {
		t.Fatalf("SliceGrid failed: %v", err)
	}

	frame := decodePNG(t, paths[0])
	if b := frame.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("scaled frame %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}

func TestSliceGrid_CustomPrefixAndFormat(t *testing.T) {
	dir := t.TempDir()
	paths, err := SliceGrid(checkerSheet(64, 32), detect.Candidate{
		FrameWidth: 32, FrameHeight: 32,
		Cols: 2, Rows: 1, TotalFrames: 2,
		Kind: detect.KindGrid,
	}, Options{OutDir: dir, Prefix: "walk", Format: "jpeg"})
	if err != nil {
		t.Fatalf("SliceGrid failed: %v", err)
	}
	if paths[0] != filepath.Join(dir, "walk_000.jpg") {
		t.Errorf("path %s, want walk_000.jpg", paths[0])
	}
}

func TestSliceGrid_UnsupportedFormat(t *testing.T) {
	_, err := SliceGrid(checkerSheet(64, 32), detect.Candidate{
		FrameWidth: 32, FrameHeight: 32,
		Cols: 2, Rows: 1, TotalFrames: 2,
	}, Options{OutDir: t.TempDir(), Format: "webp"})
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSliceClusters(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 10; y < 40; y++ {
		for x := 20; x < 60; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}

	clusters := []detect.Cluster{
		{X0: 20, Y0: 10, X1: 60, Y1: 40, Area: 1200, Members: 1},
		{X0: 70, Y0: 70, X1: 90, Y1: 95, Area: 500, Members: 1},
	}

	paths, err := SliceClusters(img, clusters, Options{OutDir: t.TempDir(), Prefix: "sprite"})
	if err != nil {
		t.Fatalf("SliceClusters failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d files, want 2", len(paths))
	}

	first := decodePNG(t, paths[0])
	if b := first.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("first sprite %dx%d, want 40x30", b.Dx(), b.Dy())
	}
	second := decodePNG(t, paths[1])
	if b := second.Bounds(); b.Dx() != 20 || b.Dy() != 25 {
		t.Errorf("second sprite %dx%d, want 20x25", b.Dx(), b.Dy())
	}
}

func TestSliceClusters_Empty(t *testing.T) {
	if _, err := SliceClusters(checkerSheet(32, 32), nil, Options{OutDir: t.TempDir()}); err == nil {
		t.Error("expected error for empty cluster list")
	}
}
