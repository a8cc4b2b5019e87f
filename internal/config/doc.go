// Package config loads viewctl configuration.
//
// Configuration comes from, in increasing precedence:
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension (Load)
//  3. VIEWCTL_* environment variables (ApplyEnv)
//
// Example TOML:
//
//	[input]
//	double_click_interval_ms = 400
//	wheel_step = 1.0
//
//	[logging]
//	level = "debug"
//	sink = "file"
//	file = "/tmp/viewctl.log"
//
//	[camera]
//	fov_degrees = 60
//	position = [0, 0, 10]
//	target = [0, 0, 0]
//
// A Store holds the live configuration. It implements the controller's
// click timing source, so a reload through Watch changes the double-click
// interval on the very next press.
package config
