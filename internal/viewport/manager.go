package viewport

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dshills/viewctl/internal/controller"
	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// Factory supplies the collaborators for a newly registered viewport.
type Factory func(id mouse.ViewportID) (controller.Collaborators, error)

// Delivery describes how the host loop ended for one raw event.
type Delivery struct {
	// Consumed is true if some priority consumed the event.
	Consumed bool

	// Priority is the consuming priority. Zero unless Consumed.
	Priority controller.Priority
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger passed to every controller.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics shares one metrics tracker across all controllers.
func WithMetrics(metrics *controller.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// Manager owns the controllers of every registered viewport.
type Manager struct {
	mu          sync.Mutex
	factory     Factory
	controllers map[mouse.ViewportID]*controller.Controller
	now         time.Time

	logger  *slog.Logger
	metrics *controller.Metrics
}

// NewManager creates a manager that builds controllers with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:     factory,
		controllers: make(map[mouse.ViewportID]*controller.Controller),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register creates the controller for id. A new controller starts at the
// manager's current tick time.
func (m *Manager) Register(id mouse.ViewportID) (*controller.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.controllers[id]; ok {
		return nil, fmt.Errorf("%w: %d", ErrViewportExists, id)
	}

	deps, err := m.factory(id)
	if err != nil {
		return nil, fmt.Errorf("viewport %d: %w", id, err)
	}

	opts := []controller.Option{controller.WithLogger(m.logger)}
	if m.metrics != nil {
		opts = append(opts, controller.WithMetrics(m.metrics))
	}
	ctrl, err := controller.New(id, deps, opts...)
	if err != nil {
		return nil, fmt.Errorf("viewport %d: %w", id, err)
	}
	ctrl.UpdateViewport(m.now)

	m.controllers[id] = ctrl
	m.logger.Debug("viewport registered", slog.Int("viewport", int(id)))
	return ctrl, nil
}

// Unregister drops the controller for id.
func (m *Manager) Unregister(id mouse.ViewportID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.controllers[id]; !ok {
		return fmt.Errorf("%w: %d", ErrViewportNotFound, id)
	}
	delete(m.controllers, id)
	m.logger.Debug("viewport unregistered", slog.Int("viewport", int(id)))
	return nil
}

// Controller returns the controller for id.
func (m *Manager) Controller(id mouse.ViewportID) (*controller.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.controllers[id]
	return ctrl, ok
}

// Viewports returns the registered IDs in ascending order.
func (m *Manager) Viewports() []mouse.ViewportID {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]mouse.ViewportID, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// HandleInputChannelEvent delivers ev to id's controller at a single
// priority.
func (m *Manager) HandleInputChannelEvent(id mouse.ViewportID, priority controller.Priority, ev channel.Event) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.controllers[id]
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrViewportNotFound, id)
	}
	return ctrl.HandleInputChannelEvent(priority, ev), nil
}

// Deliver runs the host loop for ev on id's controller: every priority
// from highest to lowest until one consumes it.
func (m *Manager) Deliver(id mouse.ViewportID, ev channel.Event) (Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.controllers[id]
	if !ok {
		return Delivery{}, fmt.Errorf("%w: %d", ErrViewportNotFound, id)
	}

	for _, p := range controller.Priorities {
		if ctrl.HandleInputChannelEvent(p, ev) {
			return Delivery{Consumed: true, Priority: p}, nil
		}
	}
	return Delivery{}, nil
}

// DeliverAll delivers each event in order and returns one Delivery per
// event.
func (m *Manager) DeliverAll(id mouse.ViewportID, events []channel.Event) ([]Delivery, error) {
	out := make([]Delivery, 0, len(events))
	for _, ev := range events {
		d, err := m.Deliver(id, ev)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, nil
}

// UpdateViewport sets the tick time on every controller.
func (m *Manager) UpdateViewport(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
	for _, ctrl := range m.controllers {
		ctrl.UpdateViewport(now)
	}
}

// ResetInputChannels resets every controller's input state.
func (m *Manager) ResetInputChannels() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ctrl := range m.controllers {
		ctrl.ResetInputChannels()
	}
	m.logger.Debug("input channels reset", slog.Int("viewports", len(m.controllers)))
}
