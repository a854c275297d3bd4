package detection

import "github.com/scanbench/docscan/internal/geometry"

// NoiseFloor is the minimum candidate area as a fraction of the frame area.
// Candidates below it are discarded before vertex-count filtering.
const NoiseFloor = 0.02

// SelectQuad picks the best document candidate from a set of polygons.
//
// Candidates arrive already vertex-approximated from a contour source.
// Selection policy:
//
//  1. Discard candidates with area below NoiseFloor of the frame area
//  2. Keep only candidates with exactly 4 vertices
//  3. Among survivors, pick the one with maximum area
//
// The winner is canonically ordered with geometry.OrderByQuadrant. The
// second return value is false when nothing survives; the Quad value is
// then meaningless.
func SelectQuad(candidates [][]geometry.Point, frameArea float64) (geometry.Quad, bool) {
	floor := NoiseFloor * frameArea

	var best []geometry.Point
	bestArea := 0.0
	for _, c := range candidates {
		area := geometry.PolygonArea(c)
		if area < floor {
			continue
		}
		if len(c) != 4 {
			continue
		}
		if area > bestArea {
			bestArea = area
			best = c
		}
	}
	if best == nil {
		return geometry.Quad{}, false
	}

	quad, ok := geometry.QuadFromPoints(geometry.OrderByQuadrant(best))
	if !ok {
		return geometry.Quad{}, false
	}
	return quad, true
}
