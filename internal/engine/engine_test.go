package engine

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/scanbench/docscan/internal/contour"
	"github.com/scanbench/docscan/internal/detection"
	"github.com/scanbench/docscan/internal/frame"
	"github.com/scanbench/docscan/internal/geometry"
)

// fakeClock advances 50ms per reading, well inside the consecutive-run gap.
type fakeClock struct {
	ms int64
}

func (c *fakeClock) Now() time.Time {
	c.ms += 50
	return time.UnixMilli(c.ms)
}

// fakeContours reports whatever polygons the test assigns.
type fakeContours struct {
	polys [][]geometry.Point
}

func (f *fakeContours) ExtractCandidates(_ image.Image) ([][]geometry.Point, error) {
	return f.polys, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoCaptureEnabled = false
	cfg.OutputLongSide = 124
	cfg.Interval = 5 * time.Millisecond
	return cfg
}

// testFrame is a 200x140 frame; a centered quad covering 70% of each side
// has area ratio 0.49 and aspect ratio 1.43, well inside the good band.
func testFrame() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 200, 140))
}

func goodContours() *contour.StaticSource {
	return contour.NewStaticQuad(200, 140, 0.7)
}

func newTestEngine(t *testing.T, cfg Config, contours contour.Source, cb Callbacks) *Engine {
	t.Helper()
	eng, err := New(cfg, &frame.StillSource{Image: testFrame()}, contours, cb)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	eng.now = (&fakeClock{}).Now
	return eng
}

func TestNew_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.MinAreaRatio = 0
	if _, err := New(cfg, &frame.StillSource{Image: testFrame()}, nil, Callbacks{}); err == nil {
		t.Error("invalid config accepted")
	}

	if _, err := New(testConfig(), nil, nil, Callbacks{}); err == nil {
		t.Error("nil frame source accepted")
	}
}

func TestEngine_ReportsGoodDetections(t *testing.T) {
	var quads []geometry.Quad
	var verdicts []detection.Verdict
	eng := newTestEngine(t, testConfig(), goodContours(), Callbacks{
		OnGoodDetection: func(q geometry.Quad, v detection.Verdict) {
			quads = append(quads, q)
			verdicts = append(verdicts, v)
		},
	})

	eng.Step()
	eng.Step()

	if len(quads) != 2 {
		t.Fatalf("OnGoodDetection called %d times, want 2", len(quads))
	}
	want := geometry.Quad{
		{X: 30, Y: 21}, {X: 170, Y: 21}, {X: 170, Y: 119}, {X: 30, Y: 119},
	}
	if quads[1] != want {
		t.Errorf("smoothed quad = %v, want %v", quads[1], want)
	}
	if !verdicts[1].Good {
		t.Errorf("verdict not good: %+v", verdicts[1])
	}
}

func TestEngine_NoDetectionNoCallback(t *testing.T) {
	called := false
	eng := newTestEngine(t, testConfig(), &fakeContours{}, Callbacks{
		OnGoodDetection: func(geometry.Quad, detection.Verdict) { called = true },
	})

	for i := 0; i < 5; i++ {
		eng.Step()
	}
	if called {
		t.Error("OnGoodDetection fired with no candidates")
	}
}

func TestEngine_AutoCaptureFiresOnce(t *testing.T) {
	cfg := testConfig()
	cfg.AutoCaptureEnabled = true
	cfg.ConsecutiveThreshold = 3

	captures := make(chan image.Image, 4)
	eng := newTestEngine(t, cfg, goodContours(), Callbacks{
		OnCaptureReady: func(img image.Image) { captures <- img },
	})

	eng.Step()
	eng.Step()
	eng.Step()

	select {
	case img := <-captures:
		if img == nil {
			t.Fatal("captured image is nil")
		}
		// Crop region is 140x98, so the long side lands on width.
		if img.Bounds().Dx() != 124 {
			t.Errorf("capture width = %d, want 124", img.Bounds().Dx())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no capture after three consecutive good detections")
	}

	select {
	case <-captures:
		t.Error("second capture without further cycles")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEngine_CaptureResetsStability(t *testing.T) {
	cfg := testConfig()
	cfg.AutoCaptureEnabled = true
	cfg.ConsecutiveThreshold = 3

	captures := make(chan image.Image, 1)
	eng := newTestEngine(t, cfg, goodContours(), Callbacks{
		OnCaptureReady: func(img image.Image) { captures <- img },
	})

	eng.Step()
	eng.Step()
	eng.Step()

	st := eng.TrackerState()
	if st.StableCount != 0 || st.ConsecutiveGood != 0 || st.AutoCapturing {
		t.Errorf("tracker not reset after capture: %+v", st)
	}

	select {
	case <-captures:
	case <-time.After(2 * time.Second):
		t.Fatal("capture never delivered")
	}
}

func TestEngine_NoAutoCaptureWhenDisabled(t *testing.T) {
	captures := make(chan image.Image, 1)
	eng := newTestEngine(t, testConfig(), goodContours(), Callbacks{
		OnCaptureReady: func(img image.Image) { captures <- img },
	})

	for i := 0; i < 15; i++ {
		eng.Step()
	}

	select {
	case <-captures:
		t.Error("auto-capture fired while disabled")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEngine_ManualCaptureFullFrame(t *testing.T) {
	captures := make(chan image.Image, 1)
	eng := newTestEngine(t, testConfig(), nil, Callbacks{
		OnCaptureReady: func(img image.Image) { captures <- img },
	})

	// No cycles have run; manual capture falls back to the full frame.
	if !eng.RequestCapture() {
		t.Fatal("RequestCapture refused")
	}

	select {
	case img := <-captures:
		if img.Bounds().Dx() != 124 {
			t.Errorf("capture width = %d, want 124", img.Bounds().Dx())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("manual capture never delivered")
	}
}

func TestEngine_ManualCaptureUsesDetectedCorners(t *testing.T) {
	captures := make(chan image.Image, 1)
	eng := newTestEngine(t, testConfig(), goodContours(), Callbacks{
		OnCaptureReady: func(img image.Image) { captures <- img },
	})

	eng.Step()
	if !eng.RequestCapture() {
		t.Fatal("RequestCapture refused")
	}

	select {
	case img := <-captures:
		// Detected region is 140x98; normalized output is 124x87.
		if img.Bounds().Dx() != 124 || img.Bounds().Dy() != 87 {
			t.Errorf("capture = %dx%d, want 124x87",
				img.Bounds().Dx(), img.Bounds().Dy())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("manual capture never delivered")
	}
}

func TestEngine_LostAfterDocumentLeaves(t *testing.T) {
	contours := &fakeContours{}
	lostCount := 0
	eng := newTestEngine(t, testConfig(), contours, Callbacks{
		OnDetectionLost: func() { lostCount++ },
	})

	contours.polys = [][]geometry.Point{goodContours().Polygon}
	for i := 0; i < 5; i++ {
		eng.Step()
	}

	// Document leaves; stability decays 5 -> 4 -> 3, loss fires at 3 and
	// only once even as decay continues.
	contours.polys = nil
	for i := 0; i < 5; i++ {
		eng.Step()
	}

	if lostCount != 1 {
		t.Errorf("OnDetectionLost called %d times, want 1", lostCount)
	}
}

func TestEngine_DebugFrame(t *testing.T) {
	cfg := testConfig()
	cfg.DebugOverlay = true
	eng := newTestEngine(t, cfg, goodContours(), Callbacks{})

	if eng.DebugFrame() != nil {
		t.Error("debug frame available before any detection")
	}

	eng.Step()

	dbg := eng.DebugFrame()
	if dbg == nil {
		t.Fatal("no debug frame after a good detection")
	}
	if dbg.Bounds().Dx() != 200 || dbg.Bounds().Dy() != 140 {
		t.Errorf("debug frame = %dx%d, want frame size 200x140",
			dbg.Bounds().Dx(), dbg.Bounds().Dy())
	}

	cfg.DebugOverlay = false
	plain := newTestEngine(t, cfg, goodContours(), Callbacks{})
	plain.Step()
	if plain.DebugFrame() != nil {
		t.Error("debug frame rendered while overlay disabled")
	}
}

func TestEngine_StartStop(t *testing.T) {
	cfg := testConfig()
	detected := make(chan struct{}, 1)
	eng := newTestEngine(t, cfg, goodContours(), Callbacks{
		OnGoodDetection: func(geometry.Quad, detection.Verdict) {
			select {
			case detected <- struct{}{}:
			default:
			}
		},
	})

	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := eng.Start(context.Background()); err == nil {
		t.Error("second Start did not fail")
	}

	select {
	case <-detected:
	case <-time.After(2 * time.Second):
		t.Fatal("loop produced no detection")
	}

	eng.Stop()
	eng.Stop() // idempotent

	st := eng.TrackerState()
	if st.StableCount != 0 || st.ConsecutiveGood != 0 {
		t.Errorf("stability not reset on stop: %+v", st)
	}
}
