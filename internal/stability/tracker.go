package stability

import "github.com/scanbench/docscan/internal/detection"

// Config holds the tracker thresholds.
type Config struct {
	// StableThreshold fires auto-capture when StableCount reaches it.
	StableThreshold int

	// ConsecutiveThreshold fires auto-capture when an unbroken run of good
	// detections reaches it.
	ConsecutiveThreshold int

	// ConsecutiveGapMs is the maximum gap between good samples for the run
	// to count as unbroken.
	ConsecutiveGapMs int64

	// StableCap is the saturation ceiling for StableCount.
	StableCap int

	// ForgetBelow is the StableCount level at or under which a quad-less
	// sample means the last-known document should be forgotten.
	ForgetBelow int
}

// DefaultConfig returns the standard tracker thresholds.
func DefaultConfig() Config {
	return Config{
		StableThreshold:      10,
		ConsecutiveThreshold: 3,
		ConsecutiveGapMs:     300,
		StableCap:            20,
		ForgetBelow:          3,
	}
}

// State is the tracker's counter snapshot.
type State struct {
	// StableCount is the saturating stability counter, in [0, StableCap].
	StableCount int `json:"stable_count"`

	// ConsecutiveGood counts the current unbroken run of good detections.
	ConsecutiveGood int `json:"consecutive_good"`

	// LastGoodMs is the timestamp of the most recent good detection.
	LastGoodMs int64 `json:"last_good_ms"`

	// AutoCapturing is set once a trigger fires and suppresses further
	// triggers until Reset.
	AutoCapturing bool `json:"auto_capturing"`
}

// Event is the tracker's per-cycle decision.
type Event int

const (
	// EventNone means keep going; nothing to act on this cycle.
	EventNone Event = iota

	// EventCapture means the scene is stable; trigger a capture.
	EventCapture

	// EventLost means no document has been visible for long enough that the
	// last-known corners should be discarded rather than shown stale.
	EventLost
)

// Tracker consumes per-frame detection samples and decides when to
// auto-capture. Not safe for concurrent use; the processing cycle is the
// single writer.
type Tracker struct {
	cfg   Config
	state State
}

// NewTracker returns a Tracker with zeroed counters.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Advance consumes one cycle's sample and returns the resulting decision.
//
// On a good sample the consecutive-run counter increments if the sample
// arrived within ConsecutiveGapMs of the previous good one, otherwise the
// run restarts at 1; StableCount increments up to the cap. On a bad sample
// the run resets to zero and StableCount decrements down to zero.
//
// EventCapture is returned at most once per Reset cycle, as soon as either
// threshold is satisfied. EventLost is returned while a quad-less sample
// coincides with StableCount at or under ForgetBelow.
func (t *Tracker) Advance(s detection.Sample) Event {
	if s.Good {
		if s.TimestampMs-t.state.LastGoodMs < t.cfg.ConsecutiveGapMs {
			t.state.ConsecutiveGood++
		} else {
			t.state.ConsecutiveGood = 1
		}
		t.state.LastGoodMs = s.TimestampMs

		if t.state.StableCount < t.cfg.StableCap {
			t.state.StableCount++
		}

		if !t.state.AutoCapturing &&
			(t.state.ConsecutiveGood >= t.cfg.ConsecutiveThreshold ||
				t.state.StableCount >= t.cfg.StableThreshold) {
			t.state.AutoCapturing = true
			return EventCapture
		}
		return EventNone
	}

	t.state.ConsecutiveGood = 0
	if t.state.StableCount > 0 {
		t.state.StableCount--
	}

	if !s.HasQuad && t.state.StableCount <= t.cfg.ForgetBelow {
		return EventLost
	}
	return EventNone
}

// Reset zeroes all counters and clears the auto-capture latch. Called when
// detection is toggled, the capture mode changes, or a capture completes.
func (t *Tracker) Reset() {
	t.state = State{}
}

// State returns a copy of the current counters.
func (t *Tracker) State() State {
	return t.state
}
