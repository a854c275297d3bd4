// Package stability tracks detection persistence across frames and decides
// when the scene is steady enough to auto-capture.
//
// The Tracker is a small state machine advanced once per processing cycle
// with that cycle's detection Sample. It maintains two counters:
//
//   - ConsecutiveGood: good detections in an unbroken run, where each
//     arrives within a short gap of the previous one
//   - StableCount: a saturating up/down counter; good samples increment
//     (capped), bad samples decrement (floored at zero)
//
// Auto-capture fires when either counter reaches its threshold. The two
// paths are an intentional redundant safety net: the consecutive run reacts
// fast to a genuinely still scene, the saturating counter catches scenes
// that are mostly-stable with occasional single-frame noise. Once fired,
// further triggers are suppressed until Reset.
//
// The Tracker is the only detection object with memory across cycles. It is
// owned and mutated by exactly one cycle at a time (single-writer); it does
// no locking of its own.
package stability
