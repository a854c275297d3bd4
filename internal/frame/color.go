package frame

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSample is a pixel color in several representations.
type ColorSample struct {
	// Hex is the color in "#rrggbb" form.
	Hex string `json:"hex"`

	// R, G, B are the 8-bit components.
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`

	// Hue (0-360), Saturation (0-1) and Lightness (0-1) in HSL space.
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// IsLight reports whether the sampled color is closer to white than black,
// used to pick contrasting overlay colors.
func (c ColorSample) IsLight() bool {
	return c.Lightness >= 0.5
}

// SampleColor extracts the color at a pixel coordinate.
//
// Coordinates are 0-based relative to the image bounds origin. Returns an
// error if the coordinate falls outside the image.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	bounds := img.Bounds()
	px := bounds.Min.X + x
	py := bounds.Min.Y + y
	if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d",
			x, y, bounds.Dx(), bounds.Dy())
	}

	cf, ok := colorful.MakeColor(img.At(px, py))
	if !ok {
		// Fully transparent pixel; treat as black.
		cf = colorful.Color{}
	}
	h, s, l := cf.Hsl()
	r, g, b := cf.RGB255()

	return &ColorSample{
		Hex:        cf.Hex(),
		R:          r,
		G:          g,
		B:          b,
		Hue:        h,
		Saturation: s,
		Lightness:  l,
	}, nil
}
