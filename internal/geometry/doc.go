// Package geometry provides the pure geometric primitives used by document
// detection: polygon area, convexity, corner ordering, and dimension
// estimation over 2D points in frame pixel coordinates.
//
// # Coordinate System
//
// All coordinates follow the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Ordering Policies
//
// Two distinct corner-ordering policies exist and are deliberately kept
// separate:
//
//   - OrderByQuadrant: classifies points into quadrants around the centroid.
//     Used by the detection path when reporting corners.
//   - OrderTopBottom: splits points into top/bottom halves around the
//     centroid Y. Used by the rectification path.
//
// Both approximate [top-left, top-right, bottom-right, bottom-left] but can
// disagree on skewed inputs; callers must not substitute one for the other.
//
// # Contract Violations
//
// Ordering functions given anything other than exactly 4 points return the
// input unchanged. This is a defined no-op fallback, not an error; callers
// validate point counts before relying on order.
//
// All functions are deterministic and side-effect free.
package geometry
