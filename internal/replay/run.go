package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dshills/viewctl/internal/camera"
	"github.com/dshills/viewctl/internal/controller"
	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
	"github.com/dshills/viewctl/internal/viewport"
)

// DefaultInterval is used when neither the script nor the options give a
// double-click interval.
const DefaultInterval = 500 * time.Millisecond

// Options configures Run. All fields are optional.
type Options struct {
	// Manipulator and Viewport replace the script's stand-in consumers.
	Manipulator mouse.Consumer
	Viewport    mouse.Consumer

	// Clicks overrides the script's interval_ms.
	Clicks controller.ClickTiming

	// Rays overrides the default camera.
	Rays controller.RaySource

	// Start is the tick time of at: 0.
	Start time.Time

	Logger *slog.Logger
}

// Dispatch is one mouse event a consumer received.
type Dispatch struct {
	Tier    controller.Tier
	Event   mouse.InteractionEvent
	Handled bool
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step       Step
	Delivery   viewport.Delivery
	Dispatches []Dispatch
}

// Result is the outcome of a run.
type Result struct {
	Steps   []StepResult
	Metrics controller.MetricsSnapshot
}

// Dispatches returns every dispatch of the run in order.
func (r Result) Dispatches() []Dispatch {
	var out []Dispatch
	for _, s := range r.Steps {
		out = append(out, s.Dispatches...)
	}
	return out
}

// Lines renders the run as one line per dispatch and reset.
func (r Result) Lines() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Step.FocusLost {
			out = append(out, fmt.Sprintf("t=%d reset", s.Step.At))
			continue
		}
		for _, d := range s.Dispatches {
			mark := ""
			if d.Handled {
				mark = " handled"
			}
			out = append(out, fmt.Sprintf("t=%d %s %s%s", s.Step.At, d.Tier, d.Event, mark))
		}
		if s.Delivery.Consumed {
			out = append(out, fmt.Sprintf("t=%d consumed at %s", s.Step.At, s.Delivery.Priority))
		}
	}
	return out
}

// tap records dispatches to the step being played.
type tap struct {
	tier    controller.Tier
	next    mouse.Consumer
	handles []string
	current *[]Dispatch
}

func (t *tap) HandleMouseInteraction(event mouse.InteractionEvent) bool {
	var handled bool
	if t.next != nil {
		handled = t.next.HandleMouseInteraction(event)
	} else {
		handled = handles(t.handles, event.Kind)
	}
	*t.current = append(*t.current, Dispatch{Tier: t.tier, Event: event, Handled: handled})
	return handled
}

// Run plays script through a fresh viewport manager.
func Run(ctx context.Context, script *Script, opts Options) (Result, error) {
	if err := script.Validate(); err != nil {
		return Result{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	clicks := opts.Clicks
	if clicks == nil {
		interval := DefaultInterval
		if script.IntervalMS > 0 {
			interval = time.Duration(script.IntervalMS) * time.Millisecond
		}
		clicks = controller.FixedInterval(interval)
	}

	rays := opts.Rays
	if rays == nil {
		w, h := script.Dimensions()
		rays = camera.New(camera.DefaultConfig(), w, h)
	}

	var (
		cursor  mouse.ScreenPoint
		current []Dispatch
	)
	manip := &tap{tier: controller.TierManipulator, next: opts.Manipulator, handles: script.ManipulatorHandles, current: &current}
	view := &tap{tier: controller.TierInteraction, next: opts.Viewport, handles: script.ViewportHandles, current: &current}

	metrics := controller.NewMetrics()
	mgr := viewport.NewManager(func(mouse.ViewportID) (controller.Collaborators, error) {
		return controller.Collaborators{
			Cursor:      controller.CursorFunc(func(mouse.ViewportID) mouse.ScreenPoint { return cursor }),
			Rays:        rays,
			Clicks:      clicks,
			Manipulator: manip,
			Viewport:    view,
		}, nil
	}, viewport.WithLogger(logger), viewport.WithMetrics(metrics))

	start := opts.Start
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	mgr.UpdateViewport(start)
	if _, err := mgr.Register(script.Viewport); err != nil {
		return Result{}, err
	}

	res := Result{Steps: make([]StepResult, 0, len(script.Steps))}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		mgr.UpdateViewport(start.Add(time.Duration(step.At) * time.Millisecond))
		if step.Cursor != nil {
			cursor = mouse.ScreenPoint{X: step.Cursor[0], Y: step.Cursor[1]}
		}

		current = nil
		sr := StepResult{Step: step}
		if step.FocusLost {
			mgr.ResetInputChannels()
		} else {
			ev, err := step.Event()
			if err != nil {
				return res, fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
			}
			d, err := mgr.Deliver(script.Viewport, ev)
			if err != nil {
				return res, err
			}
			sr.Delivery = d
			logger.Debug("replay step",
				slog.Int("step", i),
				slog.String("event", ev.String()),
				slog.Bool("consumed", d.Consumed),
			)
		}
		sr.Dispatches = current
		res.Steps = append(res.Steps, sr)
	}

	res.Metrics = metrics.Snapshot()
	return res, nil
}

// Play is Run for a channel event list with no cursor movement, mainly for
// tests and tools.
func Play(ctx context.Context, viewportID mouse.ViewportID, events []channel.Event, opts Options) (Result, error) {
	s := &Script{Version: currentVersion, Viewport: viewportID}
	for _, ev := range events {
		step := Step{Channel: string(ev.ID), State: ev.State.String()}
		v := ev.Value
		step.Value = &v
		s.Steps = append(s.Steps, step)
	}
	return Run(ctx, s, opts)
}
