package detection

import (
	"math"

	"github.com/scanbench/docscan/internal/geometry"
)

// Aspect ratios of a standard page in portrait and landscape orientation
// (1/√2 and √2). Detections are accepted when their aspect ratio lands
// within Evaluator.AspectTolerance of either.
const (
	portraitAspect  = 1 / 1.414
	landscapeAspect = 1.414
)

// Evaluator scores a candidate quadrilateral against acceptance criteria.
//
// A detection is good when the document is neither tiny nor filling the
// frame, has roughly page-like proportions (tolerant of perspective skew),
// and is convex.
type Evaluator struct {
	// MinAreaRatio and MaxAreaRatio bound the quad's area as a fraction of
	// the frame area, both exclusive.
	MinAreaRatio float64
	MaxAreaRatio float64

	// AspectTolerance is the accepted distance from either page aspect.
	AspectTolerance float64
}

// NewEvaluator returns an Evaluator with the standard thresholds.
func NewEvaluator() Evaluator {
	return Evaluator{
		MinAreaRatio:    0.1,
		MaxAreaRatio:    0.9,
		AspectTolerance: 0.3,
	}
}

// Verdict carries the evaluation of a single quad.
type Verdict struct {
	// AreaRatio is the quad area divided by the frame area.
	AreaRatio float64 `json:"area_ratio"`

	// AspectRatio is estimated width divided by estimated height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Convex reports the convexity check result.
	Convex bool `json:"convex"`

	// Good is true iff all acceptance criteria hold.
	Good bool `json:"good"`
}

// Evaluate scores a quad against the frame dimensions. It never fails;
// malformed candidates are rejected upstream by SelectQuad.
func (e Evaluator) Evaluate(q geometry.Quad, frameWidth, frameHeight int) Verdict {
	frameArea := float64(frameWidth) * float64(frameHeight)

	v := Verdict{Convex: q.IsConvex()}
	if frameArea > 0 {
		v.AreaRatio = q.Area() / frameArea
	}

	w, h := q.Dimensions()
	if h > 0 {
		v.AspectRatio = w / h
	}

	pageLike := math.Abs(v.AspectRatio-portraitAspect) <= e.AspectTolerance ||
		math.Abs(v.AspectRatio-landscapeAspect) <= e.AspectTolerance

	v.Good = v.AreaRatio > e.MinAreaRatio &&
		v.AreaRatio < e.MaxAreaRatio &&
		pageLike &&
		v.Convex
	return v
}
