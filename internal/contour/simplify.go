package contour

import (
	"math"

	"github.com/scanbench/docscan/internal/geometry"
)

// simplifyPolygon reduces a closed boundary to its corner points using
// Douglas–Peucker with the given absolute tolerance.
//
// The closed polygon is split at the vertex farthest from the first vertex,
// each open half is simplified independently, and the halves are rejoined.
// Splitting at the farthest vertex guarantees both anchors of each half are
// genuine extremes of the shape, so corners survive simplification.
func simplifyPolygon(pts []geometry.Point, tolerance float64) []geometry.Point {
	if len(pts) < 4 || tolerance <= 0 {
		return pts
	}

	far := 0
	best := -1.0
	for i, p := range pts {
		if d := geometry.Distance(pts[0], p); d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return pts
	}

	firstHalf := douglasPeucker(pts[:far+1], tolerance)

	secondInput := make([]geometry.Point, 0, len(pts)-far+1)
	secondInput = append(secondInput, pts[far:]...)
	secondInput = append(secondInput, pts[0])
	secondHalf := douglasPeucker(secondInput, tolerance)

	// Join halves, dropping the shared split vertex and the closing vertex.
	out := make([]geometry.Point, 0, len(firstHalf)+len(secondHalf)-2)
	out = append(out, firstHalf...)
	if len(secondHalf) > 2 {
		out = append(out, secondHalf[1:len(secondHalf)-1]...)
	}
	return out
}

// douglasPeucker simplifies an open polyline, always keeping both endpoints.
func douglasPeucker(pts []geometry.Point, tolerance float64) []geometry.Point {
	if len(pts) < 3 {
		return pts
	}

	maxDist := -1.0
	maxIdx := 0
	for i := 1; i < len(pts)-1; i++ {
		if d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return []geometry.Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:maxIdx+1], tolerance)
	right := douglasPeucker(pts[maxIdx:], tolerance)

	merged := make([]geometry.Point, 0, len(left)+len(right)-1)
	merged = append(merged, left[:len(left)-1]...)
	merged = append(merged, right...)
	return merged
}

// perpendicularDistance returns the distance from p to the line through a
// and b. Coincident a and b degrade to point distance.
func perpendicularDistance(p, a, b geometry.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return geometry.Distance(p, a)
	}
	return math.Abs(dx*(a.Y-p.Y)-dy*(a.X-p.X)) / length
}
