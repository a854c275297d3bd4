package rectify

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scanbench/docscan/internal/geometry"
)

// warpQuad maps the quad onto an upright rectangle sized from the quad's
// estimated dimensions, using a projective (homography) transform with
// inverse bilinear sampling.
//
// Returns false when the transform cannot be computed (degenerate corner
// sets); the caller then falls back to the bounding-box crop.
func warpQuad(src image.Image, quad geometry.Quad, bg color.Color) (image.Image, bool) {
	fw, fh := quad.Dimensions()
	dstW := int(math.Round(fw))
	dstH := int(math.Round(fh))
	if dstW < 1 || dstH < 1 {
		return nil, false
	}

	// Homography from output-rectangle corners to source-quad corners, so
	// each output pixel samples backwards into the source.
	dstCorners := geometry.Quad{
		{X: 0, Y: 0},
		{X: float64(dstW), Y: 0},
		{X: float64(dstW), Y: float64(dstH)},
		{X: 0, Y: float64(dstH)},
	}
	h, ok := computeHomography(dstCorners, quad)
	if !ok {
		return nil, false
	}

	if bg == nil {
		bg = color.White
	}
	bgNRGBA := color.NRGBAModel.Convert(bg).(color.NRGBA)

	pixels := imaging.Clone(src) // *image.NRGBA with zero-origin bounds
	srcW := pixels.Bounds().Dx()
	srcH := pixels.Bounds().Dy()

	out := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx, sy := applyHomography(h, float64(x)+0.5, float64(y)+0.5)
			out.SetNRGBA(x, y, sampleBilinear(pixels, srcW, srcH, sx, sy, bgNRGBA))
		}
	}
	return out, true
}

// computeHomography returns the 3x3 matrix H (row-major, h22 fixed at 1)
// mapping p[i] to q[i], built from the standard 8x8 DLT system.
func computeHomography(p, q geometry.Quad) ([9]float64, bool) {
	var a [8][8]float64
	var b [8]float64
	for i := 0; i < 4; i++ {
		X, Y := p[i].X, p[i].Y
		x, y := q[i].X, q[i].Y
		r := 2 * i

		// x = (h0·X + h1·Y + h2) / (h6·X + h7·Y + 1)
		a[r] = [8]float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x}
		b[r] = x

		// y = (h3·X + h4·Y + h5) / (h6·X + h7·Y + 1)
		a[r+1] = [8]float64{0, 0, 0, X, Y, 1, -X * y, -Y * y}
		b[r+1] = y
	}

	h, ok := solveLinear8(a, b)
	if !ok {
		return [9]float64{}, false
	}
	return [9]float64{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, true
}

// solveLinear8 solves an 8x8 linear system by Gauss-Jordan elimination with
// partial pivoting.
func solveLinear8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := 0; col < 8; col++ {
		pivot := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < 8; r++ {
			if abs := math.Abs(a[r][col]); abs > maxAbs {
				maxAbs = abs
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := 0; r < 8; r++ {
			if r == col {
				continue
			}
			factor := a[r][col]
			if factor == 0 {
				continue
			}
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}

// applyHomography maps (x, y) through H, returning source coordinates.
func applyHomography(h [9]float64, x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1, -1
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}

// sampleBilinear reads the source at fractional coordinates, interpolating
// the four surrounding pixels. Coordinates outside the source return the
// background color.
func sampleBilinear(img *image.NRGBA, w, h int, x, y float64, bg color.NRGBA) color.NRGBA {
	x -= 0.5
	y -= 0.5
	if x < 0 || y < 0 || x > float64(w-1) || y > float64(h-1) {
		return bg
	}

	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	p00 := img.NRGBAAt(x0, y0)
	p10 := img.NRGBAAt(x1, y0)
	p01 := img.NRGBAAt(x0, y1)
	p11 := img.NRGBAAt(x1, y1)

	lerp := func(c00, c10, c01, c11 uint8) uint8 {
		top := float64(c00)*(1-fx) + float64(c10)*fx
		bottom := float64(c01)*(1-fx) + float64(c11)*fx
		return uint8(math.Round(top*(1-fy) + bottom*fy))
	}
	return color.NRGBA{
		R: lerp(p00.R, p10.R, p01.R, p11.R),
		G: lerp(p00.G, p10.G, p01.G, p11.G),
		B: lerp(p00.B, p10.B, p01.B, p11.B),
		A: lerp(p00.A, p10.A, p01.A, p11.A),
	}
}
