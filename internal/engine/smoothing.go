package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/scanbench/docscan/internal/geometry"
)

// quadHistory retains the most recent good detections for per-corner median
// smoothing. The median rejects single-frame jitter that a mean would let
// through.
type quadHistory struct {
	window int
	quads  []geometry.Quad
}

func newQuadHistory(window int) *quadHistory {
	if window < 1 {
		window = 1
	}
	return &quadHistory{window: window}
}

// Push appends a quad, evicting the oldest once the window is full.
func (h *quadHistory) Push(q geometry.Quad) {
	h.quads = append(h.quads, q)
	if len(h.quads) > h.window {
		copy(h.quads, h.quads[1:])
		h.quads = h.quads[:h.window]
	}
}

// Reset discards the retained history.
func (h *quadHistory) Reset() {
	h.quads = h.quads[:0]
}

func (h *quadHistory) Len() int {
	return len(h.quads)
}

// Median returns the per-corner median over the retained quads. The second
// return value is false when the history is empty.
func (h *quadHistory) Median() (geometry.Quad, bool) {
	n := len(h.quads)
	if n == 0 {
		return geometry.Quad{}, false
	}

	var out geometry.Quad
	xs := make([]float64, n)
	ys := make([]float64, n)
	for corner := 0; corner < 4; corner++ {
		for i, q := range h.quads {
			xs[i] = q[corner].X
			ys[i] = q[corner].Y
		}
		sort.Float64s(xs)
		sort.Float64s(ys)
		out[corner] = geometry.Point{
			X: stat.Quantile(0.5, stat.LinInterp, xs, nil),
			Y: stat.Quantile(0.5, stat.LinInterp, ys, nil),
		}
	}
	return out, true
}
