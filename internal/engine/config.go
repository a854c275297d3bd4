package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects every tunable of the scan engine in one explicit struct,
// replacing scattered mode flags.
type Config struct {
	// AutoCaptureEnabled lets the stability tracker trigger captures.
	// Manual RequestCapture works either way.
	AutoCaptureEnabled bool

	// MinAreaRatio and MaxAreaRatio bound an acceptable detection's area
	// as a fraction of the frame area (both exclusive).
	MinAreaRatio float64
	MaxAreaRatio float64

	// AspectTolerance is the accepted distance from the standard page
	// aspect ratios (portrait 1/1.414 or landscape 1.414).
	AspectTolerance float64

	// OutputLongSide is the longer side of the rectified output image.
	OutputLongSide int

	// StableThreshold and ConsecutiveThreshold are the stability tracker's
	// two independent auto-capture paths.
	StableThreshold      int
	ConsecutiveThreshold int

	// EnableWarp switches rectification from the bounding-box crop to the
	// projective warp.
	EnableWarp bool

	// DebugOverlay enables rendering detected corners onto frames for the
	// debug view.
	DebugOverlay bool

	// Interval is the processing cycle period.
	Interval time.Duration

	// SmoothWindow is how many recent good detections feed the per-corner
	// median that stabilizes reported and captured corners. 1 disables
	// smoothing.
	SmoothWindow int
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		AutoCaptureEnabled:   true,
		MinAreaRatio:         0.1,
		MaxAreaRatio:         0.9,
		AspectTolerance:      0.3,
		OutputLongSide:       1240,
		StableThreshold:      10,
		ConsecutiveThreshold: 3,
		EnableWarp:           false,
		DebugOverlay:         false,
		Interval:             50 * time.Millisecond,
		SmoothWindow:         5,
	}
}

// FromEnv returns DefaultConfig overridden by DOCSCAN_* environment
// variables, validated.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.AutoCaptureEnabled = parseBoolOrDefault("DOCSCAN_AUTO_CAPTURE", cfg.AutoCaptureEnabled)
	cfg.MinAreaRatio = parseFloatOrDefault("DOCSCAN_MIN_AREA_RATIO", cfg.MinAreaRatio)
	cfg.MaxAreaRatio = parseFloatOrDefault("DOCSCAN_MAX_AREA_RATIO", cfg.MaxAreaRatio)
	cfg.AspectTolerance = parseFloatOrDefault("DOCSCAN_ASPECT_TOLERANCE", cfg.AspectTolerance)
	cfg.OutputLongSide = parseIntOrDefault("DOCSCAN_OUTPUT_LONG_SIDE", cfg.OutputLongSide)
	cfg.StableThreshold = parseIntOrDefault("DOCSCAN_STABLE_THRESHOLD", cfg.StableThreshold)
	cfg.ConsecutiveThreshold = parseIntOrDefault("DOCSCAN_CONSECUTIVE_THRESHOLD", cfg.ConsecutiveThreshold)
	cfg.EnableWarp = parseBoolOrDefault("DOCSCAN_ENABLE_WARP", cfg.EnableWarp)
	cfg.DebugOverlay = parseBoolOrDefault("DOCSCAN_DEBUG_OVERLAY", cfg.DebugOverlay)
	cfg.Interval = parseDurationOrDefault("DOCSCAN_INTERVAL", cfg.Interval)
	cfg.SmoothWindow = parseIntOrDefault("DOCSCAN_SMOOTH_WINDOW", cfg.SmoothWindow)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.MinAreaRatio <= 0 || c.MaxAreaRatio >= 1 || c.MinAreaRatio >= c.MaxAreaRatio {
		return fmt.Errorf("area ratio bounds must satisfy 0 < min < max < 1 (got %v, %v)",
			c.MinAreaRatio, c.MaxAreaRatio)
	}
	if c.AspectTolerance <= 0 {
		return fmt.Errorf("aspect tolerance must be > 0 (got %v)", c.AspectTolerance)
	}
	if c.OutputLongSide <= 0 {
		return fmt.Errorf("output long side must be > 0 (got %d)", c.OutputLongSide)
	}
	if c.StableThreshold <= 0 || c.ConsecutiveThreshold <= 0 {
		return fmt.Errorf("stability thresholds must be > 0 (got %d, %d)",
			c.StableThreshold, c.ConsecutiveThreshold)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %s)", c.Interval)
	}
	if c.SmoothWindow < 1 {
		return fmt.Errorf("smooth window must be >= 1 (got %d)", c.SmoothWindow)
	}
	return nil
}

func parseBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func parseFloatOrDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func parseDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
