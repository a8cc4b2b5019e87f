package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VIEWCTL_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

type envBinding struct {
	name  string
	path  string
	apply func(cfg *Config, val string) error
}

var envBindings = []envBinding{
	{"DOUBLE_CLICK_MS", "input.double_click_interval_ms", func(cfg *Config, val string) error {
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.Input.DoubleClickIntervalMS = n
		return nil
	}},
	{"WHEEL_STEP", "input.wheel_step", func(cfg *Config, val string) error {
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.Input.WheelStep = float32(f)
		return nil
	}},
	{"LOG_LEVEL", "logging.level", func(cfg *Config, val string) error {
		cfg.Logging.Level = val
		return nil
	}},
	{"LOG_FORMAT", "logging.format", func(cfg *Config, val string) error {
		cfg.Logging.Format = val
		return nil
	}},
	{"LOG_SINK", "logging.sink", func(cfg *Config, val string) error {
		cfg.Logging.Sink = val
		return nil
	}},
	{"LOG_FILE", "logging.file", func(cfg *Config, val string) error {
		cfg.Logging.File = val
		return nil
	}},
	{"FOV", "camera.fov_degrees", func(cfg *Config, val string) error {
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.Camera.FOVDegrees = float32(f)
		return nil
	}},
	{"SCRIPT", "script.path", func(cfg *Config, val string) error {
		cfg.Script.Path = val
		return nil
	}},
}

// ApplyEnv applies VIEWCTL_* overrides to cfg. A nil lookup reads the
// process environment. Empty values are treated as unset.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, b := range envBindings {
		val, ok := lookup(EnvPrefix + b.name)
		if !ok || val == "" {
			continue
		}
		if err := b.apply(cfg, val); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, &ValidationError{
				Path:    b.path,
				Message: "cannot parse environment override",
				Value:   val,
			})
		}
	}
	return nil
}
