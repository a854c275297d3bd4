package engine

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scanbench/docscan/internal/contour"
	"github.com/scanbench/docscan/internal/detection"
	"github.com/scanbench/docscan/internal/frame"
	"github.com/scanbench/docscan/internal/geometry"
	"github.com/scanbench/docscan/internal/logger"
	"github.com/scanbench/docscan/internal/rectify"
	"github.com/scanbench/docscan/internal/stability"
)

// Callbacks are the engine's outbound notifications. Nil fields are skipped.
//
// OnGoodDetection and OnDetectionLost run on the cycle goroutine and must
// return quickly. OnCaptureReady runs on its own goroutine because
// rectification is the one step too slow for the cycle budget.
type Callbacks struct {
	// OnGoodDetection reports the smoothed corners of a good detection
	// together with its quality verdict.
	OnGoodDetection func(geometry.Quad, detection.Verdict)

	// OnCaptureReady delivers the rectified document image.
	OnCaptureReady func(image.Image)

	// OnDetectionLost fires once when the last-known document corners are
	// discarded after the document leaves the frame.
	OnDetectionLost func()
}

// Engine runs the scan loop: frame in, detection out, capture when stable.
type Engine struct {
	cfg       Config
	frames    frame.Source
	contours  contour.Source
	evaluator detection.Evaluator
	callbacks Callbacks
	log       *logrus.Entry

	// now is swappable in tests to drive the stability timeline.
	now func() time.Time

	busy      atomic.Bool
	capturing atomic.Bool

	mu        sync.Mutex
	tracker   *stability.Tracker
	history   *quadHistory
	lastFrame image.Image
	lastGood  geometry.Quad
	hasLast   bool
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New builds an Engine from a validated config, a frame source, and a
// contour source. The contour source may be nil, in which case every cycle
// reports no detection (useful for source-only smoke tests).
func New(cfg Config, frames frame.Source, contours contour.Source, cb Callbacks) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if frames == nil {
		return nil, fmt.Errorf("engine: frame source is required")
	}

	tcfg := stability.DefaultConfig()
	tcfg.StableThreshold = cfg.StableThreshold
	tcfg.ConsecutiveThreshold = cfg.ConsecutiveThreshold

	return &Engine{
		cfg:      cfg,
		frames:   frames,
		contours: contours,
		evaluator: detection.Evaluator{
			MinAreaRatio:    cfg.MinAreaRatio,
			MaxAreaRatio:    cfg.MaxAreaRatio,
			AspectTolerance: cfg.AspectTolerance,
		},
		callbacks: cb,
		log:       logger.WithComponent("engine"),
		now:       time.Now,
		tracker:   stability.NewTracker(tcfg),
		history:   newQuadHistory(cfg.SmoothWindow),
	}, nil
}

// Start launches the processing loop. It returns immediately; the loop runs
// at the configured interval until the context is canceled or Stop is
// called.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("engine already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running = true
	done := e.done
	e.mu.Unlock()

	e.log.WithField("interval", e.cfg.Interval.String()).Info("scan loop started")
	go e.run(ctx, done)
	return nil
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Step()
		}
	}
}

// Stop halts the loop, waits for the in-flight cycle, and resets detection
// state so a later Start begins a fresh stability ramp. Safe to call when
// not running.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	cancel, done := e.cancel, e.done
	e.running = false
	e.mu.Unlock()

	cancel()
	<-done
	e.resetDetection()
	e.log.Info("scan loop stopped")
}

// Step runs one processing cycle synchronously. A call that arrives while
// another cycle is still in flight returns immediately instead of queueing.
func (e *Engine) Step() {
	if !e.busy.CompareAndSwap(false, true) {
		e.log.Debug("cycle in flight, tick dropped")
		return
	}
	defer e.busy.Store(false)
	e.cycle()
}

func (e *Engine) cycle() {
	nowMs := e.now().UnixMilli()

	img, err := e.frames.CurrentFrame()
	if err != nil {
		e.log.WithError(err).Debug("no frame available")
		e.advance(detection.Sample{TimestampMs: nowMs}, nil, detection.Verdict{})
		return
	}

	var candidates [][]geometry.Point
	if e.contours != nil {
		if candidates, err = e.contours.ExtractCandidates(img); err != nil {
			e.log.WithError(err).Debug("contour extraction failed")
		}
	}

	b := img.Bounds()
	sample := detection.Sample{TimestampMs: nowMs}
	var verdict detection.Verdict
	if quad, ok := detection.SelectQuad(candidates, float64(b.Dx())*float64(b.Dy())); ok {
		verdict = e.evaluator.Evaluate(quad, b.Dx(), b.Dy())
		sample.HasQuad = true
		sample.Quad = quad
		sample.Good = verdict.Good
	}

	e.advance(sample, img, verdict)
}

// advance feeds one sample to the tracker and acts on its decision.
func (e *Engine) advance(s detection.Sample, img image.Image, v detection.Verdict) {
	e.mu.Lock()
	if img != nil {
		e.lastFrame = img
	}
	event := e.tracker.Advance(s)

	var smoothed geometry.Quad
	if s.Good {
		e.history.Push(s.Quad)
		smoothed, _ = e.history.Median()
		e.lastGood = smoothed
		e.hasLast = true
	}
	lost := false
	if event == stability.EventLost && e.hasLast {
		e.hasLast = false
		e.history.Reset()
		lost = true
	}
	e.mu.Unlock()

	if s.Good && e.callbacks.OnGoodDetection != nil {
		e.callbacks.OnGoodDetection(smoothed, v)
	}

	switch event {
	case stability.EventCapture:
		if e.cfg.AutoCaptureEnabled {
			e.capture(img, smoothed)
		} else {
			e.log.Debug("auto-capture trigger ignored, auto-capture disabled")
		}
	case stability.EventLost:
		if lost {
			e.log.Debug("document lost, corners discarded")
			if e.callbacks.OnDetectionLost != nil {
				e.callbacks.OnDetectionLost()
			}
		}
	}
}

// capture rectifies a snapshot of the frame on its own goroutine, then
// resets the stability ramp. At most one capture runs at a time; a second
// request while one is in flight is dropped.
func (e *Engine) capture(img image.Image, corners geometry.Quad) bool {
	if img == nil {
		return false
	}
	if !e.capturing.CompareAndSwap(false, true) {
		e.log.Debug("capture already in flight, request dropped")
		return false
	}

	opts := rectify.DefaultOptions()
	opts.OutputLongSide = e.cfg.OutputLongSide
	opts.EnableWarp = e.cfg.EnableWarp

	pts := corners.Points()
	e.log.WithFields(logrus.Fields{
		"long_side": opts.OutputLongSide,
		"warp":      opts.EnableWarp,
	}).Info("capturing document")

	go func() {
		defer e.capturing.Store(false)
		out := rectify.Rectify(img, pts, opts)
		if cb := e.callbacks.OnCaptureReady; cb != nil {
			cb(out)
		}
	}()

	e.resetDetection()
	return true
}

// RequestCapture captures the current frame immediately, regardless of
// stability. When a recent good detection exists its smoothed corners are
// used; otherwise the full frame is rectified. Returns false when no frame
// can be obtained or a capture is already in flight.
func (e *Engine) RequestCapture() bool {
	e.mu.Lock()
	img := e.lastFrame
	corners, has := e.lastGood, e.hasLast
	e.mu.Unlock()

	if img == nil {
		// Manual capture must work before the loop has seen a frame.
		var err error
		if img, err = e.frames.CurrentFrame(); err != nil {
			e.log.WithError(err).Warn("manual capture failed, no frame")
			return false
		}
	}
	if !has {
		b := img.Bounds()
		corners = geometry.Quad{
			{X: 0, Y: 0},
			{X: float64(b.Dx()), Y: 0},
			{X: float64(b.Dx()), Y: float64(b.Dy())},
			{X: 0, Y: float64(b.Dy())},
		}
	}
	return e.capture(img, corners)
}

// DebugFrame returns the most recent frame with the smoothed detection
// drawn on it, or nil when the overlay is disabled or nothing has been
// detected yet.
func (e *Engine) DebugFrame() image.Image {
	if !e.cfg.DebugOverlay {
		return nil
	}
	e.mu.Lock()
	img, corners, has := e.lastFrame, e.lastGood, e.hasLast
	e.mu.Unlock()
	if img == nil || !has {
		return nil
	}
	return frame.DrawQuad(img, corners)
}

// TrackerState exposes the stability counters for event reporting.
func (e *Engine) TrackerState() stability.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.State()
}

func (e *Engine) resetDetection() {
	e.mu.Lock()
	e.tracker.Reset()
	e.history.Reset()
	e.hasLast = false
	e.mu.Unlock()
}
