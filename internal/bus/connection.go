package bus

import (
	"sync/atomic"

	"github.com/dshills/viewctl/internal/input/mouse"
)

// Priority orders connections within a slot. Lower values run first.
type Priority int

// Connection priorities.
const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 50
	PriorityNormal   Priority = 100
	PriorityLow      Priority = 150
)

// State is the lifecycle state of a connection.
type State int32

const (
	// StateActive means the connection receives events.
	StateActive State = iota

	// StatePaused means the connection is skipped until resumed.
	StatePaused

	// StateDisconnected means the connection has been removed.
	StateDisconnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// FilterFunc decides whether a connection sees an event.
type FilterFunc func(event mouse.InteractionEvent) bool

// Kinds returns a filter that passes only the given event kinds.
func Kinds(kinds ...mouse.EventKind) FilterFunc {
	return func(event mouse.InteractionEvent) bool {
		for _, k := range kinds {
			if event.Kind == k {
				return true
			}
		}
		return false
	}
}

type connectionConfig struct {
	priority Priority
	filter   FilterFunc
	once     bool
	name     string
}

// Option configures a connection.
type Option func(*connectionConfig)

// WithPriority sets the connection priority.
func WithPriority(p Priority) Option {
	return func(c *connectionConfig) {
		c.priority = p
	}
}

// WithFilter restricts the events the connection sees.
func WithFilter(f FilterFunc) Option {
	return func(c *connectionConfig) {
		c.filter = f
	}
}

// WithOnce disconnects the connection after it first handles an event.
func WithOnce() Option {
	return func(c *connectionConfig) {
		c.once = true
	}
}

// WithName labels the connection for logs.
func WithName(name string) Option {
	return func(c *connectionConfig) {
		c.name = name
	}
}

// Connection is a handler attached to one consumer slot.
type Connection struct {
	id      string
	slot    *slot
	handler mouse.Consumer
	config  connectionConfig
	seq     uint64
	state   atomic.Int32
}

// ID returns the unique connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Name returns the connection label, or the ID if none was set.
func (c *Connection) Name() string {
	if c.config.name != "" {
		return c.config.name
	}
	return c.id
}

// Priority returns the connection priority.
func (c *Connection) Priority() Priority {
	return c.config.priority
}

// State returns the current state.
func (c *Connection) State() State {
	return State(c.state.Load())
}

// IsActive returns true if the connection receives events.
func (c *Connection) IsActive() bool {
	return c.State() == StateActive
}

// Pause stops delivery until Resume is called.
func (c *Connection) Pause() {
	c.state.CompareAndSwap(int32(StateActive), int32(StatePaused))
}

// Resume restarts delivery after Pause.
func (c *Connection) Resume() {
	c.state.CompareAndSwap(int32(StatePaused), int32(StateActive))
}

// Disconnect removes the connection from its slot. It is safe to call more
// than once.
func (c *Connection) Disconnect() {
	if State(c.state.Swap(int32(StateDisconnected))) == StateDisconnected {
		return
	}
	c.slot.remove(c)
}

// accepts reports whether the connection should be offered event.
func (c *Connection) accepts(event mouse.InteractionEvent) bool {
	if !c.IsActive() {
		return false
	}
	return c.config.filter == nil || c.config.filter(event)
}
