package geometry

import "testing"

// permutations returns all orderings of the given points.
func permutations(pts []Point) [][]Point {
	if len(pts) <= 1 {
		return [][]Point{append([]Point(nil), pts...)}
	}
	var out [][]Point
	for i := range pts {
		rest := make([]Point, 0, len(pts)-1)
		rest = append(rest, pts[:i]...)
		rest = append(rest, pts[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Point{pts[i]}, p...))
		}
	}
	return out
}

func containsAll(got, want []Point) bool {
	if len(got) != len(want) {
		return false
	}
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if !used[i] && g == w {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestOrderByQuadrant_Square(t *testing.T) {
	pts := []Point{{10, 10}, {0, 0}, {10, 0}, {0, 10}}
	got := OrderByQuadrant(pts)

	want := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d = %v, want %v (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestOrderByQuadrant_PermutationInvariance(t *testing.T) {
	pts := []Point{{10, 10}, {0, 0}, {10, 0}, {0, 10}}
	want := OrderByQuadrant(pts)

	for _, perm := range permutations(pts) {
		got := OrderByQuadrant(perm)
		if !containsAll(got, pts) {
			t.Fatalf("permutation %v lost or duplicated points: %v", perm, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("permutation %v ordered to %v, want %v", perm, got, want)
			}
		}
	}
}

func TestOrderByQuadrant_Idempotent(t *testing.T) {
	pts := []Point{{3, 18}, {21, 2}, {1, 1}, {19, 17}}
	once := OrderByQuadrant(pts)
	twice := OrderByQuadrant(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("ordering not a fixed point: %v then %v", once, twice)
		}
	}
}

func TestOrderByQuadrant_TieBreakByDistance(t *testing.T) {
	// Three points share the top-left quadrant; the farthest from the
	// centroid must come first within that quadrant.
	pts := []Point{{0, 0}, {2, 2}, {3, 3}, {100, 100}}
	got := OrderByQuadrant(pts)
	if got[0] != (Point{0, 0}) {
		t.Errorf("first point = %v, want farthest-from-centroid (0,0)", got[0])
	}
	if got[1] != (Point{2, 2}) {
		t.Errorf("second point = %v, want (2,2)", got[1])
	}
}

func TestOrderByQuadrant_WrongCount(t *testing.T) {
	pts := []Point{{5, 5}, {1, 1}, {3, 3}}
	got := OrderByQuadrant(pts)
	for i := range pts {
		if got[i] != pts[i] {
			t.Fatalf("non-4 input was reordered: %v", got)
		}
	}
}

func TestOrderTopBottom_Parallelogram(t *testing.T) {
	// Non-axis-aligned parallelogram
	pts := []Point{{110, 60}, {20, 10}, {100, 15}, {30, 55}}
	got := OrderTopBottom(pts)

	if len(got) != 4 {
		t.Fatalf("got %d points, want 4", len(got))
	}
	// First two output points must carry the two smallest y values.
	maxTopY := got[0].Y
	if got[1].Y > maxTopY {
		maxTopY = got[1].Y
	}
	if got[2].Y < maxTopY || got[3].Y < maxTopY {
		t.Errorf("bottom points above top points: %v", got)
	}
	if got[0] != (Point{20, 10}) || got[1] != (Point{100, 15}) {
		t.Errorf("top half = %v, %v; want (20,10), (100,15)", got[0], got[1])
	}
	if got[2] != (Point{110, 60}) || got[3] != (Point{30, 55}) {
		t.Errorf("bottom half = %v, %v; want (110,60), (30,55)", got[2], got[3])
	}
}

func TestOrderTopBottom_Idempotent(t *testing.T) {
	pts := []Point{{20, 10}, {100, 15}, {110, 60}, {30, 55}}
	once := OrderTopBottom(pts)
	twice := OrderTopBottom(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("ordering not a fixed point: %v then %v", once, twice)
		}
	}
}

func TestOrderTopBottom_WrongCount(t *testing.T) {
	pts := []Point{{1, 1}, {2, 2}}
	got := OrderTopBottom(pts)
	if len(got) != 2 || got[0] != pts[0] || got[1] != pts[1] {
		t.Fatalf("non-4 input was modified: %v", got)
	}
}

func TestOrderTopBottom_DegenerateHalf(t *testing.T) {
	// All points share a y value below their centroid is impossible, but
	// four identical y values put everything in the bottom half.
	pts := []Point{{0, 5}, {10, 5}, {20, 5}, {30, 5}}
	got := OrderTopBottom(pts)
	for i := range pts {
		if got[i] != pts[i] {
			t.Fatalf("degenerate input was reordered: %v", got)
		}
	}
}
