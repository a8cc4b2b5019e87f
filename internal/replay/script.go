package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// ErrInvalidStep is returned for a step that cannot be played.
var ErrInvalidStep = errors.New("replay: invalid step")

const currentVersion = 1

// Default viewport size when a script gives none.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Script is a parsed replay script.
type Script struct {
	Version            int              `yaml:"version,omitempty"`
	Viewport           mouse.ViewportID `yaml:"viewport"`
	IntervalMS         int              `yaml:"interval_ms,omitempty"`
	Size               [2]int           `yaml:"size,omitempty,flow"`
	ManipulatorHandles []string         `yaml:"manipulator_handles,omitempty,flow"`
	ViewportHandles    []string         `yaml:"viewport_handles,omitempty,flow"`
	Steps              []Step           `yaml:"steps"`
}

// Step is one scripted input.
type Step struct {
	At        int      `yaml:"at"`
	Cursor    *[2]int  `yaml:"cursor,omitempty,flow"`
	Channel   string   `yaml:"channel,omitempty"`
	State     string   `yaml:"state,omitempty"`
	Value     *float32 `yaml:"value,omitempty"`
	FocusLost bool     `yaml:"focus_lost,omitempty"`
}

// Event returns the raw channel event of a non-reset step. Began defaults
// to value 1 and every other state to 0 unless value is given.
func (s Step) Event() (channel.Event, error) {
	state, err := channel.ParseState(s.State)
	if err != nil {
		return channel.Event{}, err
	}
	ev := channel.Event{ID: channel.ID(s.Channel), State: state}
	if state == channel.StateBegan {
		ev.Value = 1
	}
	if s.Value != nil {
		ev.Value = *s.Value
	}
	return ev, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("replay: empty script")
		}
		return nil, fmt.Errorf("replay: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

var kindNames = map[string]mouse.EventKind{
	mouse.EventMove.String():        mouse.EventMove,
	mouse.EventDown.String():        mouse.EventDown,
	mouse.EventUp.String():          mouse.EventUp,
	mouse.EventDoubleClick.String(): mouse.EventDoubleClick,
	mouse.EventWheel.String():       mouse.EventWheel,
}

// Validate checks the script.
func (s *Script) Validate() error {
	if s.Version > currentVersion {
		return fmt.Errorf("replay: unsupported script version %d (max supported: %d)", s.Version, currentVersion)
	}
	if s.IntervalMS < 0 {
		return fmt.Errorf("replay: negative interval_ms %d", s.IntervalMS)
	}
	if s.Size[0] < 0 || s.Size[1] < 0 {
		return fmt.Errorf("replay: negative size %v", s.Size)
	}
	for _, list := range [][]string{s.ManipulatorHandles, s.ViewportHandles} {
		for _, name := range list {
			if _, ok := kindNames[name]; !ok {
				return fmt.Errorf("replay: unknown event kind %q", name)
			}
		}
	}

	for i, step := range s.Steps {
		if step.At < 0 {
			return fmt.Errorf("%w %d: negative at %d", ErrInvalidStep, i, step.At)
		}
		if step.FocusLost {
			if step.Channel != "" {
				return fmt.Errorf("%w %d: focus_lost step cannot carry a channel", ErrInvalidStep, i)
			}
			continue
		}
		if step.Channel == "" {
			return fmt.Errorf("%w %d: missing channel", ErrInvalidStep, i)
		}
		if _, err := step.Event(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

// Dimensions returns the viewport size, falling back to the defaults.
func (s *Script) Dimensions() (int, int) {
	w, h := s.Size[0], s.Size[1]
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

func handles(names []string, kind mouse.EventKind) bool {
	return slices.Contains(names, kind.String())
}
