package bus

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/viewctl/internal/input/mouse"
)

// Bus holds the manipulator and viewport consumer slots of one viewport.
type Bus struct {
	manipulator *slot
	viewport    *slot
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used when connections change.
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.manipulator.logger = logger.With(slog.String("slot", "manipulator"))
			b.viewport.logger = logger.With(slog.String("slot", "viewport"))
		}
	}
}

// New creates an empty bus.
func New(opts ...BusOption) *Bus {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := &Bus{
		manipulator: &slot{logger: discard},
		viewport:    &slot{logger: discard},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ConnectManipulator attaches a handler to the manipulator slot.
func (b *Bus) ConnectManipulator(handler mouse.ConsumerFunc, opts ...Option) *Connection {
	return b.manipulator.connect(handler, opts)
}

// ConnectViewport attaches a handler to the viewport slot.
func (b *Bus) ConnectViewport(handler mouse.ConsumerFunc, opts ...Option) *Connection {
	return b.viewport.connect(handler, opts)
}

// Manipulator returns the consumer that dispatches to the manipulator slot.
func (b *Bus) Manipulator() mouse.Consumer {
	return b.manipulator
}

// Viewport returns the consumer that dispatches to the viewport slot.
func (b *Bus) Viewport() mouse.Consumer {
	return b.viewport
}

// Count returns the number of connections in each slot.
func (b *Bus) Count() (manipulator, viewport int) {
	return b.manipulator.count(), b.viewport.count()
}

// slot is an ordered list of connections that acts as a single consumer.
type slot struct {
	mu     sync.RWMutex
	conns  []*Connection
	seq    uint64
	logger *slog.Logger
}

func (s *slot) connect(handler mouse.Consumer, opts []Option) *Connection {
	cfg := connectionConfig{priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Connection{
		id:      uuid.New().String(),
		slot:    s,
		handler: handler,
		config:  cfg,
	}
	c.state.Store(int32(StateActive))

	s.mu.Lock()
	s.seq++
	c.seq = s.seq
	s.conns = append(s.conns, c)
	// Stable by priority, then connection order.
	slices.SortFunc(s.conns, func(a, b *Connection) int {
		if a.config.priority != b.config.priority {
			return int(a.config.priority) - int(b.config.priority)
		}
		return int(a.seq) - int(b.seq)
	})
	s.mu.Unlock()

	s.logger.Debug("handler connected", slog.String("id", c.id), slog.String("name", c.Name()))
	return c
}

func (s *slot) remove(c *Connection) {
	s.mu.Lock()
	s.conns = slices.DeleteFunc(s.conns, func(x *Connection) bool { return x == c })
	s.mu.Unlock()
	s.logger.Debug("handler disconnected", slog.String("id", c.id), slog.String("name", c.Name()))
}

func (s *slot) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// HandleMouseInteraction offers event to each connection in order and
// returns true at the first one that handles it.
func (s *slot) HandleMouseInteraction(event mouse.InteractionEvent) bool {
	s.mu.RLock()
	conns := slices.Clone(s.conns)
	s.mu.RUnlock()

	for _, c := range conns {
		if !c.accepts(event) {
			continue
		}
		if c.handler.HandleMouseInteraction(event) {
			if c.config.once {
				c.Disconnect()
			}
			return true
		}
	}
	return false
}
