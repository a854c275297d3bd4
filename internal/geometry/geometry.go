package geometry

import "math"

// Point represents a 2D coordinate in frame pixel space.
//
// Points carry no identity beyond their value; they are copied freely.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Quad is an ordered sequence of exactly four points approximating a
// document boundary.
//
// Once produced by OrderByQuadrant or OrderTopBottom the sequence is
// [top-left, top-right, bottom-right, bottom-left], relative to the quad's
// own centroid rather than the frame.
type Quad [4]Point

// Points returns the corners as a slice, in stored order.
func (q Quad) Points() []Point {
	return []Point{q[0], q[1], q[2], q[3]}
}

// QuadFromPoints builds a Quad from a 4-point slice.
//
// Returns false if the slice does not contain exactly four points.
func QuadFromPoints(pts []Point) (Quad, bool) {
	if len(pts) != 4 {
		return Quad{}, false
	}
	return Quad{pts[0], pts[1], pts[2], pts[3]}, true
}

// Area returns the quad's area using the shoelace formula.
//
// The result is always non-negative. Degenerate quads (collinear corners)
// have zero area.
func (q Quad) Area() float64 {
	return PolygonArea(q.Points())
}

// PolygonArea returns the area of an arbitrary polygon via the shoelace
// formula:
//
//	|Σ(x_i·y_{i+1} − x_{i+1}·y_i)| / 2
//
// with indices taken modulo the vertex count. Polygons with fewer than
// three vertices have zero area.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// IsConvex reports whether the quad is convex.
//
// # Algorithm
//
// Computes the cross product of each pair of consecutive edges. The quad is
// convex iff all cross products share the same sign. A zero cross product
// (collinear corners) breaks the run and yields false, so degenerate quads
// never pass as convex.
func (q Quad) IsConvex() bool {
	sign := 0
	for i := 0; i < 4; i++ {
		a := q[i]
		b := q[(i+1)%4]
		c := q[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			return false
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Dimensions estimates the quad's width and height.
//
// Width is the mean length of the two horizontal-ish opposite edges
// (TL→TR and BL→BR); height is the mean of the two vertical-ish edges
// (TL→BL and TR→BR). The quad must already be in canonical
// [TL, TR, BR, BL] order.
func (q Quad) Dimensions() (width, height float64) {
	width = (Distance(q[0], q[1]) + Distance(q[3], q[2])) / 2
	height = (Distance(q[0], q[3]) + Distance(q[1], q[2])) / 2
	return width, height
}

// Centroid returns the arithmetic mean of the given points.
//
// An empty slice yields the zero point.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
