package frame

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/scanbench/docscan/internal/geometry"
)

// cornerLabels follow the canonical quad order.
var cornerLabels = [4]string{"TL", "TR", "BR", "BL"}

// DrawQuad renders a detected quadrilateral onto a copy of the frame for
// the debug view: edges, per-corner colored markers, and corner labels.
//
// Each corner gets a distinct hue so mis-ordered corners are visible at a
// glance. Edge color contrasts with the frame: dark edges on light scenes,
// light on dark.
func DrawQuad(img image.Image, quad geometry.Quad) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	edgeColor := color.NRGBA{230, 230, 230, 255}
	c := geometry.Centroid(quad.Points())
	if sample, err := SampleColor(img, int(c.X), int(c.Y)); err == nil && sample.IsLight() {
		edgeColor = color.NRGBA{25, 25, 25, 255}
	}

	for i := 0; i < 4; i++ {
		a := quad[i]
		b := quad[(i+1)%4]
		drawLine(out, int(a.X), int(a.Y), int(b.X), int(b.Y), edgeColor)
	}

	for i, p := range quad.Points() {
		hue := colorful.Hsv(float64(i)*90, 0.9, 0.9)
		r, g, b := hue.RGB255()
		marker := color.NRGBA{r, g, b, 255}
		drawMarker(out, int(p.X), int(p.Y), 3, marker)
		drawLabel(out, int(p.X)+5, int(p.Y)-5, cornerLabels[i], marker)
	}
	return out
}

// drawLine draws a 1px line using Bresenham's algorithm, clipped to bounds.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setClipped(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawMarker fills a square of the given radius around (x, y).
func drawMarker(img *image.NRGBA, x, y, radius int, c color.NRGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			setClipped(img, x+dx, y+dy, c)
		}
	}
}

// drawLabel renders short text at (x, y) using the built-in 7x13 face.
func drawLabel(img *image.NRGBA, x, y int, text string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func setClipped(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
