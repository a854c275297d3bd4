// Package contour supplies candidate document boundaries extracted from raw
// pixels.
//
// The detection core never talks to a vision backend directly; it consumes a
// Source, which turns a frame into a set of candidate polygons whose
// vertices have already been approximated (reduced to corner points). Three
// implementations exist:
//
//   - EdgeSource: the built-in pure-Go extractor. Gaussian blur and
//     grayscale conversion, gradient edge detection, connected-component
//     grouping, Moore-neighbor boundary tracing, and Douglas–Peucker
//     polygon simplification.
//   - StaticSource: returns a fixed polygon every frame. Used as the
//     fallback detection mode when no extractor is available, and in tests.
//   - The gocv-backed source (build tag "gocv"): delegates to OpenCV's
//     FindContours/ApproxPolyDP for platforms where the native library is
//     available.
//
// A nil Source is valid at the engine level and simply means no document is
// ever found.
package contour
