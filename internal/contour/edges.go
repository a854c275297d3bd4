package contour

import (
	"errors"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/scanbench/docscan/internal/geometry"
)

// EdgeSource is the built-in pure-Go contour extractor.
//
// It finds high-gradient pixels, groups them into connected components,
// traces each component's outer boundary, and simplifies the boundary down
// to its corner points. Clean, high-contrast frames (a document against a
// darker background) work best; heavily textured scenes produce many small
// components that the size filter discards.
type EdgeSource struct {
	// BlurRadius is the Gaussian blur radius applied before gradient
	// computation to suppress sensor noise. Typical: 1.0-3.0.
	BlurRadius float64

	// GradientThreshold is the grayscale delta (0-255) between neighboring
	// pixels above which a pixel counts as an edge. Typical: 20-50.
	GradientThreshold float64

	// MinComponentSize is the minimum number of edge pixels a connected
	// component needs before its boundary is traced. Smaller components are
	// discarded as noise.
	MinComponentSize int

	// SimplifyTolerance is the Douglas–Peucker tolerance expressed as a
	// fraction of the boundary perimeter. 0.02 mirrors the common
	// approxPolyDP setting for document detection.
	SimplifyTolerance float64
}

// NewEdgeSource returns an EdgeSource with defaults tuned for document
// frames in the few-hundred-pixel range.
func NewEdgeSource() *EdgeSource {
	return &EdgeSource{
		BlurRadius:        1.5,
		GradientThreshold: 30,
		MinComponentSize:  40,
		SimplifyTolerance: 0.02,
	}
}

// ExtractCandidates runs the full extraction pipeline on a frame.
//
// # Algorithm
//
//  1. Preprocess: Gaussian blur, then grayscale (ITU-R BT.601 via bild)
//  2. Edge detection: mark pixels whose horizontal or vertical gradient
//     exceeds GradientThreshold
//  3. Connected components: label 8-connected edge pixels with an
//     iterative flood fill
//  4. Boundary tracing: Moore-neighbor trace of each surviving component's
//     outer boundary
//  5. Simplification: Douglas–Peucker with tolerance proportional to the
//     boundary perimeter
//
// Returned polygons may have any vertex count; the selector filters for
// quadrilaterals.
func (s *EdgeSource) ExtractCandidates(img image.Image) ([][]geometry.Point, error) {
	if img == nil {
		return nil, errors.New("nil frame")
	}

	pre := img
	if s.BlurRadius > 0 {
		pre = blur.Gaussian(pre, s.BlurRadius)
	}
	gray := effect.Grayscale(pre)

	bounds := gray.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w < 3 || h < 3 {
		return nil, nil
	}

	lum := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := gray.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum[y*w+x] = uint8(r >> 8)
		}
	}

	edges := s.detectEdges(lum, w, h)
	labels, stats := labelComponents(edges, w, h)

	var candidates [][]geometry.Point
	for label, st := range stats {
		if st.size < s.MinComponentSize {
			continue
		}
		boundary := traceBoundary(labels, w, h, label, st)
		if len(boundary) < 4 {
			continue
		}
		tolerance := s.SimplifyTolerance * perimeter(boundary)
		poly := simplifyPolygon(boundary, tolerance)
		if len(poly) >= 3 {
			candidates = append(candidates, poly)
		}
	}
	return candidates, nil
}

// detectEdges marks pixels whose gradient against the right or lower
// neighbor exceeds the threshold. Border pixels are never edges.
func (s *EdgeSource) detectEdges(lum []uint8, w, h int) []bool {
	edges := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := float64(lum[y*w+x])
			dx := math.Abs(c - float64(lum[y*w+x+1]))
			dy := math.Abs(c - float64(lum[(y+1)*w+x]))
			if dx > s.GradientThreshold || dy > s.GradientThreshold {
				edges[y*w+x] = true
			}
		}
	}
	return edges
}

// componentStats tracks the pixel count and bounding box of a labeled
// component.
type componentStats struct {
	size                   int
	minX, minY, maxX, maxY int
}

// labelComponents groups 8-connected edge pixels into components using an
// iterative (stack-based) flood fill. Labels start at 1; 0 means no edge.
func labelComponents(edges []bool, w, h int) ([]int, map[int]componentStats) {
	labels := make([]int, w*h)
	stats := make(map[int]componentStats)
	next := 1

	type pixel struct{ x, y int }
	var stack []pixel

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			idx := sy*w + sx
			if !edges[idx] || labels[idx] != 0 {
				continue
			}

			st := componentStats{minX: sx, minY: sy, maxX: sx, maxY: sy}
			stack = append(stack[:0], pixel{sx, sy})
			labels[idx] = next

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				st.size++
				if p.x < st.minX {
					st.minX = p.x
				}
				if p.x > st.maxX {
					st.maxX = p.x
				}
				if p.y < st.minY {
					st.minY = p.y
				}
				if p.y > st.maxY {
					st.maxY = p.y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.x+dx, p.y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if edges[nidx] && labels[nidx] == 0 {
							labels[nidx] = next
							stack = append(stack, pixel{nx, ny})
						}
					}
				}
			}

			stats[next] = st
			next++
		}
	}
	return labels, stats
}

// perimeter returns the closed-path length of a polygon.
func perimeter(pts []geometry.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for i := range pts {
		total += geometry.Distance(pts[i], pts[(i+1)%len(pts)])
	}
	return total
}
