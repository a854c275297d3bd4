package frame

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a solid color image to dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestFileSource_CyclesThroughFrames(t *testing.T) {
	dir := t.TempDir()
	red := writeTestPNG(t, dir, "a.png", color.RGBA{255, 0, 0, 255})
	blue := writeTestPNG(t, dir, "b.png", color.RGBA{0, 0, 255, 255})

	src, err := NewFileSource(red, blue)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}

	// First frame red, second blue, third wraps to red again.
	for i, wantRed := range []bool{true, false, true} {
		img, err := src.CurrentFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		r, _, b, _ := img.At(2, 2).RGBA()
		gotRed := r > b
		if gotRed != wantRed {
			t.Errorf("frame %d: red=%v, want %v", i, gotRed, wantRed)
		}
	}
}

func TestFileSource_CachesDecodedFrames(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", color.White)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}
	if _, err := src.CurrentFrame(); err != nil {
		t.Fatalf("first frame: %v", err)
	}

	// Once decoded, the file on disk no longer matters.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := src.CurrentFrame(); err != nil {
		t.Errorf("cached frame unavailable after file removal: %v", err)
	}
}

func TestFileSource_NoPaths(t *testing.T) {
	if _, err := NewFileSource(); err == nil {
		t.Error("NewFileSource with no paths did not fail")
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src, err := NewFileSource("/nonexistent/frame.png")
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}
	if _, err := src.CurrentFrame(); err == nil {
		t.Error("missing file did not return an error")
	}
}

func TestStillSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src := &StillSource{Image: img}

	got, err := src.CurrentFrame()
	if err != nil {
		t.Fatalf("CurrentFrame failed: %v", err)
	}
	if got != image.Image(img) {
		t.Error("StillSource returned a different image")
	}

	empty := &StillSource{}
	if _, err := empty.CurrentFrame(); err == nil {
		t.Error("empty StillSource did not return an error")
	}
}
