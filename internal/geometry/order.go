package geometry

import "sort"

// OrderByQuadrant orders four unordered points into approximately
// [top-left, top-right, bottom-right, bottom-left].
//
// If the input does not contain exactly 4 points it is returned unchanged
// (see the package contract-violation policy).
//
// # Algorithm
//
// Each point is classified into a quadrant relative to the centroid:
//
//	0: x <  cx, y <  cy   (top-left region)
//	1: x >= cx, y <  cy   (top-right region)
//	2: x >= cx, y >= cy   (bottom-right region)
//	3: x <  cx, y >= cy   (bottom-left region)
//
// Points sort by quadrant ascending. Points sharing a quadrant tie-break by
// descending distance from the centroid. The tie-break is intentional and
// must not be "fixed": downstream consumers depend on this exact order.
//
// The result approximates [TL, TR, BR, BL] but is not guaranteed to be a
// true clockwise order for non-convex or heavily skewed inputs.
func OrderByQuadrant(pts []Point) []Point {
	if len(pts) != 4 {
		return pts
	}
	c := Centroid(pts)

	ordered := make([]Point, 4)
	copy(ordered, pts)

	sort.SliceStable(ordered, func(i, j int) bool {
		qi := quadrant(ordered[i], c)
		qj := quadrant(ordered[j], c)
		if qi != qj {
			return qi < qj
		}
		return Distance(ordered[i], c) > Distance(ordered[j], c)
	})
	return ordered
}

// quadrant classifies p relative to centroid c. Comparisons are strict on
// the low side and inclusive on the high side so that points exactly on the
// centroid axes land in a single, stable quadrant.
func quadrant(p, c Point) int {
	switch {
	case p.X < c.X && p.Y < c.Y:
		return 0
	case p.X >= c.X && p.Y < c.Y:
		return 1
	case p.X >= c.X && p.Y >= c.Y:
		return 2
	default:
		return 3
	}
}

// OrderTopBottom orders four unordered points into
// [top-left, top-right, bottom-right, bottom-left] by splitting them into
// top and bottom halves around the centroid.
//
// This is the ordering policy the rectification path uses. It is kept
// separate from OrderByQuadrant; the two can disagree on skewed inputs.
//
// If the input does not contain exactly 4 points, or the split leaves a
// half empty (all points on one side of the centroid), the input is
// returned unchanged.
//
// # Algorithm
//
// Points with y below the centroid form the top half, the rest the bottom
// half. Each half is sorted by x ascending, then the output assembles
// [top[0], top[last], bottom[last], bottom[0]].
func OrderTopBottom(pts []Point) []Point {
	if len(pts) != 4 {
		return pts
	}
	c := Centroid(pts)

	var top, bottom []Point
	for _, p := range pts {
		if p.Y < c.Y {
			top = append(top, p)
		} else {
			bottom = append(bottom, p)
		}
	}
	if len(top) == 0 || len(bottom) == 0 {
		return pts
	}

	sort.Slice(top, func(i, j int) bool { return top[i].X < top[j].X })
	sort.Slice(bottom, func(i, j int) bool { return bottom[i].X < bottom[j].X })

	return []Point{
		top[0],
		top[len(top)-1],
		bottom[len(bottom)-1],
		bottom[0],
	}
}
