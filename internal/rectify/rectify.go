package rectify

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scanbench/docscan/internal/geometry"
)

// Options controls rectification output.
type Options struct {
	// OutputLongSide is the length of the longer output side.
	OutputLongSide int

	// EnableWarp switches on the projective warp. When off (the default)
	// the axis-aligned bounding-box crop is used.
	EnableWarp bool

	// Background fills canvas area not covered by the document.
	Background color.Color
}

// DefaultOptions returns the standard output settings.
func DefaultOptions() Options {
	return Options{
		OutputLongSide: 1240,
		EnableWarp:     false,
		Background:     color.White,
	}
}

// Rectify turns a source frame plus four detected corners into a flat,
// upright, standard-size image.
//
// Corners may arrive in any order; they are canonicalized with
// geometry.OrderTopBottom. Per the package failure policy the result is
// never nil for a non-nil source: every failure degrades to the best
// available prior image.
func Rectify(src image.Image, corners []geometry.Point, opts Options) image.Image {
	if src == nil {
		return nil
	}

	ordered := geometry.OrderTopBottom(corners)
	quad, ok := geometry.QuadFromPoints(ordered)
	if !ok {
		return src
	}

	var intermediate image.Image
	if opts.EnableWarp {
		if warped, ok := warpQuad(src, quad, opts.Background); ok {
			intermediate = warped
		}
	}
	if intermediate == nil {
		intermediate = Crop(src, quad)
	}

	return Normalize(intermediate, opts)
}

// Crop extracts the axis-aligned bounding region of the quad from the
// source, verbatim.
//
// The region is clamped to the source bounds. An empty clamped region
// returns the source unchanged.
func Crop(src image.Image, quad geometry.Quad) image.Image {
	minX, minY := quad[0].X, quad[0].Y
	maxX, maxY := quad[0].X, quad[0].Y
	for _, p := range quad.Points()[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	region := image.Rect(int(minX), int(minY), int(maxX), int(maxY))
	region = region.Intersect(src.Bounds())
	if region.Empty() {
		return src
	}
	return imaging.Crop(src, region)
}

// Normalize scales an image so its longer side equals OutputLongSide,
// preserving aspect ratio, composited centered onto a blank canvas.
func Normalize(img image.Image, opts Options) image.Image {
	if img == nil {
		return nil
	}
	long := opts.OutputLongSide
	if long <= 0 {
		return img
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return img
	}

	var dstW, dstH int
	if w >= h {
		dstW = long
		dstH = int(math.Round(float64(h) * float64(long) / float64(w)))
	} else {
		dstH = long
		dstW = int(math.Round(float64(w) * float64(long) / float64(h)))
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	resized := imaging.Resize(img, dstW, dstH, imaging.Lanczos)
	canvas := imaging.New(dstW, dstH, bg)
	return imaging.PasteCenter(canvas, resized)
}
