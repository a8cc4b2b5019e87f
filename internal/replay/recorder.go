package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// Recorder captures live input as a replay script.
type Recorder struct {
	mu     sync.Mutex
	start  time.Time
	script Script
	cursor mouse.ScreenPoint
	moved  bool
}

// NewRecorder starts a recording for viewport at start.
func NewRecorder(viewport mouse.ViewportID, start time.Time) *Recorder {
	return &Recorder{
		start:  start,
		script: Script{Version: currentVersion, Viewport: viewport},
	}
}

// Record adds ev at now. The cursor is stored only when it changed since
// the previous step.
func (r *Recorder) Record(now time.Time, ev channel.Event, cursor mouse.ScreenPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step := Step{
		At:      r.offset(now),
		Channel: string(ev.ID),
		State:   ev.State.String(),
	}
	if !r.moved || cursor != r.cursor {
		step.Cursor = &[2]int{cursor.X, cursor.Y}
		r.cursor = cursor
		r.moved = true
	}
	if ev.Value != 0 && !(ev.State == channel.StateBegan && ev.Value == 1) {
		v := ev.Value
		step.Value = &v
	}
	r.script.Steps = append(r.script.Steps, step)
}

// RecordReset adds a focus-lost step at now.
func (r *Recorder) RecordReset(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.script.Steps = append(r.script.Steps, Step{At: r.offset(now), FocusLost: true})
}

// SetSize records the viewport size.
func (r *Recorder) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.script.Size = [2]int{width, height}
}

func (r *Recorder) offset(now time.Time) int {
	ms := int(now.Sub(r.start) / time.Millisecond)
	return max(ms, 0)
}

// Script returns a copy of the recording so far.
func (r *Recorder) Script() Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.script
	s.Steps = append([]Step(nil), r.script.Steps...)
	return s
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.script.Steps)
}

// Save writes the recording to path atomically.
func (r *Recorder) Save(path string) error {
	s := r.Script()
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("replay: write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replay: rename temp file: %w", err)
	}
	return nil
}
