package config

import (
	"errors"
	"fmt"
	"slices"
)

// MaxDoubleClickIntervalMS bounds input.double_click_interval_ms.
const MaxDoubleClickIntervalMS = 5000

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	logSinks   = []string{"stderr", "file", "none"}
)

// Validate checks every setting and reports all problems at once. The
// returned error wraps ErrValidationFailed and each *ValidationError.
func Validate(cfg Config) error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if n := cfg.Input.DoubleClickIntervalMS; n <= 0 || n > MaxDoubleClickIntervalMS {
		fail("input.double_click_interval_ms", fmt.Sprintf("must be in 1..%d", MaxDoubleClickIntervalMS), n)
	}
	if cfg.Input.WheelStep <= 0 {
		fail("input.wheel_step", "must be positive", cfg.Input.WheelStep)
	}

	if !slices.Contains(logLevels, cfg.Logging.Level) {
		fail("logging.level", fmt.Sprintf("must be one of %v", logLevels), cfg.Logging.Level)
	}
	if !slices.Contains(logFormats, cfg.Logging.Format) {
		fail("logging.format", fmt.Sprintf("must be one of %v", logFormats), cfg.Logging.Format)
	}
	if !slices.Contains(logSinks, cfg.Logging.Sink) {
		fail("logging.sink", fmt.Sprintf("must be one of %v", logSinks), cfg.Logging.Sink)
	}
	if cfg.Logging.Sink == "file" && cfg.Logging.File == "" {
		fail("logging.file", "required when logging.sink is file", cfg.Logging.File)
	}

	if f := cfg.Camera.FOVDegrees; f <= 0 || f >= 180 {
		fail("camera.fov_degrees", "must be between 0 and 180 exclusive", f)
	}
	if cfg.Camera.Position == cfg.Camera.Target {
		fail("camera.target", "must differ from camera.position", cfg.Camera.Target)
	}
	if cfg.Camera.PixelAspect <= 0 {
		fail("camera.pixel_aspect", "must be positive", cfg.Camera.PixelAspect)
	}

	if cfg.Script.TimeoutMS < 0 {
		fail("script.timeout_ms", "must not be negative", cfg.Script.TimeoutMS)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
}
