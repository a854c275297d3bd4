// Package detection turns raw contour candidates into judged document
// detections.
//
// Two pieces live here:
//
//   - SelectQuad filters a contour source's candidate polygons down to the
//     single most plausible document quadrilateral (noise-floor area filter,
//     4-vertex filter, maximum area wins).
//   - Evaluator scores the selected quad against acceptance criteria: area
//     ratio bounds, page-like aspect ratio, and convexity.
//
// The per-cycle outcome is packaged as a Sample and handed to the stability
// tracker. Detection absence is not an error: a cycle with no surviving
// candidate simply produces a Sample with HasQuad false.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward.
package detection
