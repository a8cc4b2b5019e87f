package config

import (
	"time"

	"cogentcore.org/core/math32"
)

// Config is the complete viewctl configuration.
type Config struct {
	Input   InputConfig   `toml:"input" yaml:"input"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Camera  CameraConfig  `toml:"camera" yaml:"camera"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
}

// InputConfig configures raw input handling.
type InputConfig struct {
	// DoubleClickIntervalMS is the maximum gap between two presses of the
	// same button for the second to be a double-click.
	DoubleClickIntervalMS int `toml:"double_click_interval_ms" yaml:"double_click_interval_ms"`

	// WheelStep is the wheel axis value emitted per notch.
	WheelStep float32 `toml:"wheel_step" yaml:"wheel_step"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level      string `toml:"level" yaml:"level"`
	Format     string `toml:"format" yaml:"format"`
	Sink       string `toml:"sink" yaml:"sink"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
}

// CameraConfig configures the viewport camera.
type CameraConfig struct {
	FOVDegrees  float32    `toml:"fov_degrees" yaml:"fov_degrees"`
	Position    [3]float32 `toml:"position" yaml:"position"`
	Target      [3]float32 `toml:"target" yaml:"target"`
	PixelAspect float32    `toml:"pixel_aspect" yaml:"pixel_aspect"`
}

// ScriptConfig configures the optional Lua consumer.
type ScriptConfig struct {
	Path      string `toml:"path" yaml:"path"`
	TimeoutMS int    `toml:"timeout_ms" yaml:"timeout_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{
			DoubleClickIntervalMS: 500,
			WheelStep:             1.0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Sink:       "stderr",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Camera: CameraConfig{
			FOVDegrees:  60,
			Position:    [3]float32{0, 0, 10},
			Target:      [3]float32{0, 0, 0},
			PixelAspect: 0.5,
		},
		Script: ScriptConfig{
			TimeoutMS: 50,
		},
	}
}

// DoubleClickInterval returns the configured interval as a duration.
func (c Config) DoubleClickInterval() time.Duration {
	return time.Duration(c.Input.DoubleClickIntervalMS) * time.Millisecond
}

// ScriptTimeout returns the per-call script timeout.
func (c Config) ScriptTimeout() time.Duration {
	return time.Duration(c.Script.TimeoutMS) * time.Millisecond
}

// CameraPosition returns the camera position as a vector.
func (c Config) CameraPosition() math32.Vector3 {
	p := c.Camera.Position
	return math32.Vec3(p[0], p[1], p[2])
}

// CameraTarget returns the camera target as a vector.
func (c Config) CameraTarget() math32.Vector3 {
	p := c.Camera.Target
	return math32.Vec3(p[0], p[1], p[2])
}
