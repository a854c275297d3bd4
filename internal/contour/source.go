package contour

import (
	"image"

	"github.com/scanbench/docscan/internal/geometry"
)

// Source extracts candidate document boundaries from a frame.
//
// Implementations return zero or more polygons, each an ordered vertex
// sequence in frame pixel coordinates. Vertex counts are expected to be
// already approximated (corner points, not raw contour pixels); the
// selector keeps only 4-vertex candidates.
type Source interface {
	ExtractCandidates(img image.Image) ([][]geometry.Point, error)
}

// StaticSource is a Source that reports the same polygon every frame.
//
// It backs the simulated/fallback detection mode: when no real extractor is
// available the caller can substitute a fixed placeholder quadrilateral and
// the rest of the pipeline behaves normally.
type StaticSource struct {
	Polygon []geometry.Point
}

// NewStaticQuad returns a StaticSource reporting a centered quadrilateral
// covering the given fraction of an w×h frame.
func NewStaticQuad(w, h int, fraction float64) *StaticSource {
	fw := float64(w)
	fh := float64(h)
	dx := fw * (1 - fraction) / 2
	dy := fh * (1 - fraction) / 2
	return &StaticSource{
		Polygon: []geometry.Point{
			{X: dx, Y: dy},
			{X: fw - dx, Y: dy},
			{X: fw - dx, Y: fh - dy},
			{X: dx, Y: fh - dy},
		},
	}
}

// ExtractCandidates returns the fixed polygon, ignoring the frame.
// A nil or empty polygon yields no candidates.
func (s *StaticSource) ExtractCandidates(_ image.Image) ([][]geometry.Point, error) {
	if len(s.Polygon) == 0 {
		return nil, nil
	}
	poly := make([]geometry.Point, len(s.Polygon))
	copy(poly, s.Polygon)
	return [][]geometry.Point{poly}, nil
}
