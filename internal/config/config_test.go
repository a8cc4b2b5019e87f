package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()) = %v", err)
	}
	if got := cfg.DoubleClickInterval(); got != 500*time.Millisecond {
		t.Errorf("DoubleClickInterval() = %v", got)
	}
	if got := cfg.CameraPosition(); got.Z != 10 {
		t.Errorf("CameraPosition() = %v", got)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "viewctl.toml", `
[input]
double_click_interval_ms = 250

[logging]
level = "debug"

[camera]
position = [1, 2, 3]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.DoubleClickIntervalMS != 250 {
		t.Errorf("interval = %d", cfg.Input.DoubleClickIntervalMS)
	}
	if cfg.Input.WheelStep != 1.0 {
		t.Errorf("wheel_step default lost: %g", cfg.Input.WheelStep)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Sink != "stderr" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("position = %v", cfg.Camera.Position)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, ext := range []string{"yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			path := writeFile(t, "viewctl."+ext, `
input:
  wheel_step: 2.5
script:
  path: consumer.lua
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Input.WheelStep != 2.5 || cfg.Script.Path != "consumer.lua" {
				t.Errorf("cfg = %+v", cfg)
			}
			if cfg.Input.DoubleClickIntervalMS != 500 {
				t.Errorf("interval default lost: %d", cfg.Input.DoubleClickIntervalMS)
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty file changed defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name: "unsupported extension",
			file: "viewctl.json",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
			},
		},
		{
			name:    "toml syntax",
			file:    "bad.toml",
			content: "[input]\ndouble_click_interval_ms = = 3\n",
			check: func(t *testing.T, err error) {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("err = %v, want *ParseError", err)
				}
				if perr.Line != 2 {
					t.Errorf("line = %d, want 2", perr.Line)
				}
			},
		},
		{
			name:    "toml unknown key",
			file:    "unknown.toml",
			content: "[input]\ndouble_click = 3\n",
			check: func(t *testing.T, err error) {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("err = %v, want *ParseError", err)
				}
				if !strings.Contains(perr.Message, "double_click") {
					t.Errorf("message %q does not name the key", perr.Message)
				}
			},
		},
		{
			name:    "yaml unknown key",
			file:    "unknown.yaml",
			content: "input:\n  speed: 3\n",
			check: func(t *testing.T, err error) {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("err = %v, want *ParseError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			tt.check(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"VIEWCTL_DOUBLE_CLICK_MS": "300",
		"VIEWCTL_LOG_LEVEL":       "warn",
		"VIEWCTL_SCRIPT":          "/tmp/x.lua",
		"VIEWCTL_FOV":             "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Input.DoubleClickIntervalMS != 300 || cfg.Logging.Level != "warn" || cfg.Script.Path != "/tmp/x.lua" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Camera.FOVDegrees != 60 {
		t.Errorf("empty override applied: fov = %g", cfg.Camera.FOVDegrees)
	}
}

func TestApplyEnvProcessEnvironment(t *testing.T) {
	t.Setenv("VIEWCTL_WHEEL_STEP", "0.25")

	cfg := Default()
	if err := ApplyEnv(&cfg, nil); err != nil {
		t.Fatal(err)
	}
	if cfg.Input.WheelStep != 0.25 {
		t.Errorf("wheel_step = %g", cfg.Input.WheelStep)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, func(k string) (string, bool) {
		if k == "VIEWCTL_DOUBLE_CLICK_MS" {
			return "soon", true
		}
		return "", false
	})

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "input.double_click_interval_ms" {
		t.Errorf("err = %v", err)
	}
	if cfg.Input.DoubleClickIntervalMS != 500 {
		t.Errorf("bad override changed value to %d", cfg.Input.DoubleClickIntervalMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero interval", func(c *Config) { c.Input.DoubleClickIntervalMS = 0 }, "input.double_click_interval_ms"},
		{"huge interval", func(c *Config) { c.Input.DoubleClickIntervalMS = 60000 }, "input.double_click_interval_ms"},
		{"wheel step", func(c *Config) { c.Input.WheelStep = 0 }, "input.wheel_step"},
		{"level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"sink", func(c *Config) { c.Logging.Sink = "syslog" }, "logging.sink"},
		{"file sink without file", func(c *Config) { c.Logging.Sink = "file" }, "logging.file"},
		{"fov", func(c *Config) { c.Camera.FOVDegrees = 180 }, "camera.fov_degrees"},
		{"degenerate camera", func(c *Config) { c.Camera.Target = c.Camera.Position }, "camera.target"},
		{"aspect", func(c *Config) { c.Camera.PixelAspect = 0 }, "camera.pixel_aspect"},
		{"timeout", func(c *Config) { c.Script.TimeoutMS = -1 }, "script.timeout_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("first failure = %v, want path %s", verr, tt.path)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Input.WheelStep = -1
	cfg.Logging.Level = "loud"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	for _, want := range []string{"input.wheel_step", "logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s", err, want)
		}
	}
}
