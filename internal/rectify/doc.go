// Package rectify transforms a captured document region into a flat,
// standard-size output image.
//
// The baseline path is a two-step approximation:
//
//  1. Crop: extract the axis-aligned bounding box of the four corners
//     verbatim (no interpolation). This corrects bounding only, not skew.
//  2. Normalize: scale the crop so its longer side equals the configured
//     output size, composited centered on a blank canvas, preserving the
//     cropped aspect ratio. Orientation (portrait vs landscape) follows
//     whichever intermediate side is longer.
//
// A higher-fidelity projective warp (homography mapping the four corners to
// a true rectangle) is available behind Options.EnableWarp. The crop-based
// baseline is retained as the fallback for degenerate corner sets and for
// environments where warp output is not wanted.
//
// # Failure Policy
//
// Rectification never hard-fails the caller: a step that cannot proceed
// returns the best image produced so far (warp falls back to crop, crop
// falls back to the original frame). A scan flow should never dead-end.
//
// Corner ordering here uses geometry.OrderTopBottom; this is the
// rectification path's ordering policy and is deliberately distinct from
// the detection path's OrderByQuadrant.
package rectify
