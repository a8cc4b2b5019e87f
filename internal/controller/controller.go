package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// Collaborators are the viewport services and consumers a Controller
// depends on. All fields are required.
type Collaborators struct {
	// Cursor reports the cursor's screen position.
	Cursor CursorSource

	// Rays computes the world ray through a screen position.
	Rays RaySource

	// Clicks reports the platform double-click interval.
	Clicks ClickTiming

	// Manipulator receives events delivered on TierManipulator.
	Manipulator mouse.Consumer

	// Viewport receives events delivered on TierInteraction.
	Viewport mouse.Consumer
}

func (c Collaborators) validate() error {
	switch {
	case c.Cursor == nil:
		return ErrNoCursorSource
	case c.Rays == nil:
		return ErrNoRaySource
	case c.Clicks == nil:
		return ErrNoClickTiming
	case c.Manipulator == nil:
		return fmt.Errorf("%w: manipulator", ErrNoConsumer)
	case c.Viewport == nil:
		return fmt.Errorf("%w: viewport", ErrNoConsumer)
	}
	return nil
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics tracker. Several controllers may share one.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// Controller normalizes raw input for one viewport and routes it to the
// manipulator or viewport consumer depending on the tier.
type Controller struct {
	viewport mouse.ViewportID
	deps     Collaborators

	state  tracker
	clicks *clickTracker

	// now is the current tick time, set by UpdateViewport.
	now time.Time

	metrics *Metrics
	logger  *slog.Logger
}

// New creates a controller for the given viewport.
func New(viewport mouse.ViewportID, deps Collaborators, opts ...Option) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		viewport: viewport,
		deps:     deps,
		clicks:   newClickTracker(),
		metrics:  NewMetrics(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.Int("viewport", int(viewport)))
	return c, nil
}

// ViewportID returns the viewport the controller belongs to.
func (c *Controller) ViewportID() mouse.ViewportID {
	return c.viewport
}

// HandleInputChannelEvent handles a raw event delivered at a host priority.
// Priorities without a tier are ignored and never consumed.
func (c *Controller) HandleInputChannelEvent(priority Priority, ev channel.Event) bool {
	tier, ok := priority.Tier()
	if !ok {
		return false
	}
	return c.HandleTier(tier, ev)
}

// HandleTier classifies ev, updates state according to the tier rules,
// dispatches the resulting mouse event to the tier's consumer and returns
// whether the raw event is consumed.
func (c *Controller) HandleTier(tier Tier, ev channel.Event) bool {
	c.metrics.recordEvent(tier)

	var (
		kind       mouse.EventKind
		emit       bool
		override   mouse.Button
		wheelDelta float32
	)

	cls := Classify(ev.ID)
	switch cls.Kind {
	case KindMotion:
		if tier == TierManipulator {
			c.refreshPick(tier)
		}
		kind, emit = mouse.EventMove, true

	case KindButton:
		override = cls.Button
		switch ev.State {
		case channel.StateBegan:
			c.state.pressButton(cls.Button, tier)
			if c.IsDoubleClick(cls.Button) {
				c.clicks.forget(cls.Button, tier)
				kind = mouse.EventDoubleClick
			} else {
				// Registering only on the final tier keeps the manipulator
				// pass of this same press from seeing its own timestamp.
				c.clicks.register(cls.Button, c.now, tier)
				kind = mouse.EventDown
			}
			emit = true

		case channel.StateEnded:
			// Hosts send Ended to every controller, including ones that
			// never saw the press; only forward releases we tracked.
			if c.state.isHeld(cls.Button) {
				c.state.releaseButton(cls.Button, tier)
				kind, emit = mouse.EventUp, true
			} else {
				c.metrics.recordSuppressedRelease()
			}
		}

	case KindModifier:
		switch {
		case ev.State.IsActive():
			c.state.setModifier(cls.Modifier, true)
		case ev.State == channel.StateEnded:
			c.state.setModifier(cls.Modifier, false)
		}

	case KindWheel:
		if ev.State.IsActive() {
			kind, emit = mouse.EventWheel, true
			wheelDelta = ev.Value
		}

	default:
		c.metrics.recordIgnored()
		return false
	}

	if !emit {
		return false
	}

	event := c.buildEvent(kind, override, wheelDelta)
	handled := c.consumerFor(tier).HandleMouseInteraction(event)

	// Only presses are filtered; releases always propagate.
	consumed := handled && ev.IsActive()
	c.metrics.recordDispatch(kind, handled, consumed)

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("mouse interaction",
			slog.String("tier", tier.String()),
			slog.String("channel", ev.ID.String()),
			slog.String("kind", kind.String()),
			slog.String("buttons", event.Interaction.Buttons.String()),
			slog.Bool("handled", handled),
			slog.Bool("consumed", consumed),
		)
	}
	return consumed
}

// refreshPick queries the cursor position and world ray and caches them.
func (c *Controller) refreshPick(tier Tier) {
	screen := c.deps.Cursor.CursorScreenPosition(c.viewport)
	ray, ok := c.deps.Rays.ScreenToWorldRay(c.viewport, screen)
	c.metrics.recordRayQuery(ok)
	c.state.updatePick(tier, screen, ray, ok)
}

// buildEvent snapshots the state into an event. For button events the
// payload's button set is replaced by the acting button alone.
func (c *Controller) buildEvent(kind mouse.EventKind, override mouse.Button, wheelDelta float32) mouse.InteractionEvent {
	interaction := c.state.snapshot(c.viewport)
	if override != mouse.ButtonNone {
		interaction.Buttons = mouse.ButtonSet(override)
	}

	switch kind {
	case mouse.EventMove, mouse.EventDown, mouse.EventUp, mouse.EventDoubleClick:
		return mouse.NewEvent(interaction, kind)
	case mouse.EventWheel:
		return mouse.NewWheelEvent(interaction, wheelDelta)
	}
	panic(fmt.Sprintf("controller: no payload rule for mouse event %d", kind))
}

func (c *Controller) consumerFor(tier Tier) mouse.Consumer {
	if tier == TierManipulator {
		return c.deps.Manipulator
	}
	return c.deps.Viewport
}

// IsDoubleClick reports whether a press of b now would be a double-click.
// The interval is read from the ClickTiming source on every call.
func (c *Controller) IsDoubleClick(b mouse.Button) bool {
	if _, ok := c.clicks.pendingAt(b); !ok {
		return false
	}
	return c.clicks.isDoubleClick(b, c.now, c.deps.Clicks.DoubleClickInterval())
}

// UpdateViewport sets the current tick time. The host calls it once per
// update cycle before delivering that cycle's input.
func (c *Controller) UpdateViewport(now time.Time) {
	c.now = now
}

// Now returns the current tick time.
func (c *Controller) Now() time.Time {
	return c.now
}

// ResetInputChannels forgets all held buttons, modifiers, the cached pick
// and every pending double-click. The host calls it when input state must
// be invalidated, e.g. when the window loses focus.
func (c *Controller) ResetInputChannels() {
	c.clicks.reset()
	c.state.reset()
	c.metrics.recordReset()
	c.logger.Debug("input channels reset")
}

// Interaction returns a snapshot of the tracked state.
func (c *Controller) Interaction() mouse.Interaction {
	return c.state.snapshot(c.viewport)
}

// Metrics returns the controller's metrics tracker.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}
