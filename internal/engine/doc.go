// Package engine orchestrates the live scan loop.
//
// Each cycle pulls a frame, extracts contour candidates, selects and scores
// the best quadrilateral, and feeds the result to the stability tracker.
// Good detections are smoothed over a short history before being reported,
// and a stable scene triggers rectified capture. Cycles are cooperative:
// a tick that arrives while the previous cycle is still running is dropped
// rather than queued.
package engine
