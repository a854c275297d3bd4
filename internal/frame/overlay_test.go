package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/scanbench/docscan/internal/geometry"
)

func TestDrawQuad_PreservesSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	quad := geometry.Quad{{X: 10, Y: 10}, {X: 100, Y: 10}, {X: 100, Y: 80}, {X: 10, Y: 80}}

	out := DrawQuad(img, quad)
	if w, h := out.Bounds().Dx(), out.Bounds().Dy(); w != 120 || h != 90 {
		t.Errorf("overlay size = %dx%d, want 120x90", w, h)
	}
}

func TestDrawQuad_MarksCornersAndEdges(t *testing.T) {
	// Mid-gray frame so both light and dark overlay parts differ from it.
	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	gray := color.RGBA{128, 128, 128, 255}
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, gray)
		}
	}
	quad := geometry.Quad{{X: 10, Y: 10}, {X: 100, Y: 10}, {X: 100, Y: 80}, {X: 10, Y: 80}}

	out := DrawQuad(img, quad)

	// Corners must be recolored.
	for _, p := range quad.Points() {
		c := out.NRGBAAt(int(p.X), int(p.Y))
		if c.R == 128 && c.G == 128 && c.B == 128 {
			t.Errorf("corner (%v,%v) not marked", p.X, p.Y)
		}
	}

	// Edge midpoint must be recolored.
	mid := out.NRGBAAt(55, 10)
	if mid.R == 128 && mid.G == 128 && mid.B == 128 {
		t.Error("top edge not drawn")
	}

	// Source image untouched.
	if r, _, _, _ := img.At(10, 10).RGBA(); uint8(r>>8) != 128 {
		t.Error("DrawQuad mutated the source frame")
	}
}

func TestDrawQuad_CornersOffFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	quad := geometry.Quad{{X: -20, Y: -20}, {X: 70, Y: -20}, {X: 70, Y: 70}, {X: -20, Y: 70}}

	// Must clip rather than panic.
	out := DrawQuad(img, quad)
	if out == nil {
		t.Fatal("DrawQuad returned nil")
	}
}
