//go:build gocv

package contour

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/scanbench/docscan/internal/geometry"
)

// goCVSource extracts candidates with OpenCV via gocv. Built only with the
// "gocv" tag; platforms without the native library use EdgeSource instead.
type goCVSource struct {
	// CannyLow and CannyHigh are the hysteresis thresholds passed to Canny.
	CannyLow  float32
	CannyHigh float32

	// SimplifyTolerance is the ApproxPolyDP epsilon as a fraction of the
	// contour arc length.
	SimplifyTolerance float64
}

// NewGoCVSource returns the OpenCV-backed contour source.
func NewGoCVSource() (Source, error) {
	return &goCVSource{
		CannyLow:          50,
		CannyHigh:         150,
		SimplifyTolerance: 0.02,
	}, nil
}

// ExtractCandidates converts the frame to a Mat, runs Canny edge detection,
// and returns the ApproxPolyDP-simplified external contours.
func (s *goCVSource) ExtractCandidates(img image.Image) ([][]geometry.Point, error) {
	if img == nil {
		return nil, fmt.Errorf("nil frame")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)
	gocv.GaussianBlur(gray, &gray, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, s.CannyLow, s.CannyHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var candidates [][]geometry.Point
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		epsilon := s.SimplifyTolerance * gocv.ArcLength(c, true)
		approx := gocv.ApproxPolyDP(c, epsilon, true)

		poly := make([]geometry.Point, 0, approx.Size())
		for j := 0; j < approx.Size(); j++ {
			p := approx.At(j)
			poly = append(poly, geometry.Point{X: float64(p.X), Y: float64(p.Y)})
		}
		approx.Close()

		if len(poly) >= 3 {
			candidates = append(candidates, poly)
		}
	}
	return candidates, nil
}
