package contour

import "github.com/scanbench/docscan/internal/geometry"

// Moore neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// traceBoundary extracts the outer boundary of a labeled component using
// Moore-neighbor tracing, restricted to the component's bounding box.
// Returned points are pixel coordinates in trace order.
func traceBoundary(labels []int, w, h, label int, st componentStats) []geometry.Point {
	sx, sy := findStartPixel(labels, w, h, label, st)
	if sx == -1 {
		return nil
	}

	pts := make([]geometry.Point, 0, 64)
	appendPoint := func(x, y int) {
		p := geometry.Point{X: float64(x), Y: float64(y)}
		n := len(pts)
		if n > 0 && pts[n-1] == p {
			return
		}
		// Drop collinear middle points as we go; simplification still runs
		// afterwards but this keeps boundaries short on straight edges.
		if n >= 2 {
			a, b := pts[n-2], pts[n-1]
			cross := (b.X-a.X)*(p.Y-b.Y) - (b.Y-a.Y)*(p.X-b.X)
			if cross == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts to the left of the start pixel
	startCx, startCy := cx, cy
	startBx, startBy := bx, by
	maxSteps := 4*(st.maxX-st.minX+1)*(st.maxY-st.minY+1) + 8

	appendPoint(cx, cy)

	for steps := 0; steps < maxSteps; steps++ {
		nx, ny, nbx, nby, found := nextBoundaryPixel(labels, w, h, label, cx, cy, bx, by)
		if !found {
			break
		}
		bx, by = nbx, nby
		cx, cy = nx, ny
		appendPoint(cx, cy)

		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
	}

	// Remove the duplicated closing point, if the trace closed the loop.
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// findStartPixel returns the first boundary pixel of the component within
// its bounding box, or (-1, -1) if none exists.
func findStartPixel(labels []int, w, h, label int, st componentStats) (int, int) {
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if isLabel(labels, w, h, label, x, y) && isBoundary(labels, w, h, label, x, y) {
				return x, y
			}
		}
	}
	return -1, -1
}

// isBoundary reports whether a component pixel has at least one 4-connected
// neighbor outside the component.
func isBoundary(labels []int, w, h, label, x, y int) bool {
	return !isLabel(labels, w, h, label, x+1, y) ||
		!isLabel(labels, w, h, label, x-1, y) ||
		!isLabel(labels, w, h, label, x, y+1) ||
		!isLabel(labels, w, h, label, x, y-1)
}

func isLabel(labels []int, w, h, label, x, y int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return labels[y*w+x] == label
}

// nextBoundaryPixel scans the Moore neighborhood of (cx, cy) clockwise,
// starting just past the backtrack pixel (bx, by), and returns the next
// component pixel together with the new backtrack position.
func nextBoundaryPixel(labels []int, w, h, label, cx, cy, bx, by int) (nx, ny, nbx, nby int, found bool) {
	start := 0
	for i := 0; i < 8; i++ {
		if cx+mooreDX[i] == bx && cy+mooreDY[i] == by {
			start = (i + 1) % 8
			break
		}
	}

	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+mooreDX[i], cy+mooreDY[i]
		if isLabel(labels, w, h, label, tx, ty) {
			return tx, ty, bx, by, true
		}
		bx, by = tx, ty
	}
	return 0, 0, bx, by, false
}
