package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/scanbench/docscan/internal/contour"
	"github.com/scanbench/docscan/internal/detection"
	"github.com/scanbench/docscan/internal/engine"
	"github.com/scanbench/docscan/internal/frame"
	"github.com/scanbench/docscan/internal/geometry"
	"github.com/scanbench/docscan/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// event is one NDJSON line on stdout. Logs go to stderr so the event stream
// stays machine-readable.
type event struct {
	Type    string             `json:"type"`
	Corners []geometry.Point   `json:"corners,omitempty"`
	Verdict *detection.Verdict `json:"verdict,omitempty"`
	Path    string             `json:"path,omitempty"`
}

// emitter serializes events from the cycle and capture goroutines.
type emitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newEmitter() *emitter {
	return &emitter{enc: json.NewEncoder(os.Stdout)}
}

func (e *emitter) emit(ev event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.enc.Encode(ev)
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("docscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	os.Exit(run(os.Args[1:]))
}

func printHelp() {
	fmt.Println("docscan - document scanner engine")
	fmt.Println()
	fmt.Println("Usage: docscan [options] frame.png [frame.png ...]")
	fmt.Println()
	fmt.Println("Frames are cycled as a simulated camera feed. Detection events are")
	fmt.Println("written to stdout as NDJSON; logs go to stderr. The first stable")
	fmt.Println("detection triggers a rectified capture.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -out DIR          directory for captured images (default \".\")")
	fmt.Println("  -timeout D        give up after this long without a capture (default 30s)")
	fmt.Println("  -manual           capture immediately instead of waiting for stability")
	fmt.Println("  -gocv             use the OpenCV contour backend (requires gocv build tag)")
	fmt.Println("  -debug            write a detection overlay image next to the capture")
	fmt.Println("  --version, -v     print version information")
	fmt.Println("  --help, -h        print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  DOCSCAN_LOG_LEVEL            debug, info, warn, error (default info)")
	fmt.Println("  DOCSCAN_AUTO_CAPTURE         enable auto-capture (default true)")
	fmt.Println("  DOCSCAN_MIN_AREA_RATIO       minimum document/frame area (default 0.1)")
	fmt.Println("  DOCSCAN_MAX_AREA_RATIO       maximum document/frame area (default 0.9)")
	fmt.Println("  DOCSCAN_ASPECT_TOLERANCE     page aspect tolerance (default 0.3)")
	fmt.Println("  DOCSCAN_OUTPUT_LONG_SIDE     rectified long side in px (default 1240)")
	fmt.Println("  DOCSCAN_STABLE_THRESHOLD     stability counter trigger (default 10)")
	fmt.Println("  DOCSCAN_CONSECUTIVE_THRESHOLD consecutive-run trigger (default 3)")
	fmt.Println("  DOCSCAN_ENABLE_WARP          perspective warp on capture (default false)")
	fmt.Println("  DOCSCAN_INTERVAL             cycle period (default 50ms)")
	fmt.Println("  DOCSCAN_SMOOTH_WINDOW        corner median window (default 5)")
}

func run(args []string) int {
	fs := flag.NewFlagSet("docscan", flag.ExitOnError)
	outDir := fs.String("out", ".", "directory for captured images")
	timeout := fs.Duration("timeout", 30*time.Second, "give up after this long without a capture")
	manual := fs.Bool("manual", false, "capture immediately instead of waiting for stability")
	useGoCV := fs.Bool("gocv", false, "use the OpenCV contour backend")
	debug := fs.Bool("debug", false, "write a detection overlay image next to the capture")
	_ = fs.Parse(args)

	log := logger.WithComponent("main")

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: docscan [options] frame.png [frame.png ...]")
		return 2
	}

	cfg, err := engine.FromEnv()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return 1
	}
	if *debug {
		cfg.DebugOverlay = true
	}

	frames, err := frame.NewFileSource(paths...)
	if err != nil {
		log.WithError(err).Error("frame source setup failed")
		return 1
	}

	var contours contour.Source = contour.NewEdgeSource()
	if *useGoCV {
		cv, err := contour.NewGoCVSource()
		if err != nil {
			log.WithError(err).Warn("OpenCV backend unavailable, using built-in extractor")
		} else {
			contours = cv
		}
	}

	out := newEmitter()
	captured := make(chan string, 1)

	var eng *engine.Engine
	eng, err = engine.New(cfg, frames, contours, engine.Callbacks{
		OnGoodDetection: func(q geometry.Quad, v detection.Verdict) {
			out.emit(event{Type: "detection", Corners: q.Points(), Verdict: &v})
		},
		OnDetectionLost: func() {
			out.emit(event{Type: "lost"})
		},
		OnCaptureReady: func(img image.Image) {
			path, err := writeCapture(*outDir, img)
			if err != nil {
				log.WithError(err).Error("writing capture failed")
				path = ""
			}
			out.emit(event{Type: "capture", Path: path})
			select {
			case captured <- path:
			default:
			}
		},
	})
	if err != nil {
		log.WithError(err).Error("engine setup failed")
		return 1
	}

	if *manual {
		if !eng.RequestCapture() {
			log.Error("manual capture failed")
			return 1
		}
		<-captured
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Start(ctx); err != nil {
		log.WithError(err).Error("engine start failed")
		return 1
	}
	defer eng.Stop()

	select {
	case <-captured:
	case <-ctx.Done():
		log.Info("interrupted")
		return 130
	case <-time.After(*timeout):
		log.WithField("timeout", timeout.String()).Warn("no stable detection, capturing current frame")
		if dbg := eng.DebugFrame(); dbg != nil {
			if path, err := writeOverlay(*outDir, dbg); err == nil {
				out.emit(event{Type: "overlay", Path: path})
			}
		}
		if !eng.RequestCapture() {
			log.Error("fallback capture failed")
			return 1
		}
		<-captured
	}

	if dbg := eng.DebugFrame(); dbg != nil {
		if path, err := writeOverlay(*outDir, dbg); err != nil {
			log.WithError(err).Warn("writing overlay failed")
		} else {
			out.emit(event{Type: "overlay", Path: path})
		}
	}
	return 0
}

func writeCapture(dir string, img image.Image) (string, error) {
	return writePNG(filepath.Join(dir, fmt.Sprintf("capture-%d.png", time.Now().UnixMilli())), img)
}

func writeOverlay(dir string, img image.Image) (string, error) {
	return writePNG(filepath.Join(dir, "overlay.png"), img)
}

func writePNG(path string, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to write")
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, nil
}
