package detection

import "github.com/scanbench/docscan/internal/geometry"

// Sample is one processing cycle's detection outcome.
//
// Samples are ephemeral: produced every cycle, consumed immediately by the
// stability tracker, then discarded. Only the tracker's aggregate counters
// persist across cycles.
type Sample struct {
	// Quad is the selected document boundary, ordered [TL, TR, BR, BL].
	// Only meaningful when HasQuad is true.
	Quad geometry.Quad `json:"quad"`

	// HasQuad reports whether any 4-vertex candidate survived selection.
	HasQuad bool `json:"has_quad"`

	// Good reports whether the quad passed the quality evaluation.
	// Always false when HasQuad is false.
	Good bool `json:"good"`

	// TimestampMs is the cycle time in Unix milliseconds.
	TimestampMs int64 `json:"timestamp_ms"`
}
