package controller

import (
	"sync/atomic"

	"github.com/dshills/viewctl/internal/input/mouse"
)

const kindCount = int(mouse.EventWheel) + 1

// Metrics counts controller activity. Counters are atomic so a Metrics
// value may be shared by several controllers and read from any goroutine.
type Metrics struct {
	events             [tierCount]atomic.Uint64
	dispatched         [kindCount]atomic.Uint64
	handled            atomic.Uint64
	consumed           atomic.Uint64
	suppressedReleases atomic.Uint64
	ignored            atomic.Uint64
	rayQueries         atomic.Uint64
	rayMisses          atomic.Uint64
	resets             atomic.Uint64

	enabled atomic.Bool
}

// NewMetrics creates an enabled metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

func (m *Metrics) recordEvent(tier Tier) {
	if m.enabled.Load() && tier < tierCount {
		m.events[tier].Add(1)
	}
}

func (m *Metrics) recordDispatch(kind mouse.EventKind, handled, consumed bool) {
	if !m.enabled.Load() {
		return
	}
	if int(kind) < kindCount {
		m.dispatched[kind].Add(1)
	}
	if handled {
		m.handled.Add(1)
	}
	if consumed {
		m.consumed.Add(1)
	}
}

func (m *Metrics) recordSuppressedRelease() {
	if m.enabled.Load() {
		m.suppressedReleases.Add(1)
	}
}

func (m *Metrics) recordIgnored() {
	if m.enabled.Load() {
		m.ignored.Add(1)
	}
}

func (m *Metrics) recordRayQuery(hit bool) {
	if !m.enabled.Load() {
		return
	}
	m.rayQueries.Add(1)
	if !hit {
		m.rayMisses.Add(1)
	}
}

func (m *Metrics) recordReset() {
	if m.enabled.Load() {
		m.resets.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	ManipulatorEvents  uint64
	InteractionEvents  uint64
	Dispatched         map[mouse.EventKind]uint64
	Handled            uint64
	Consumed           uint64
	SuppressedReleases uint64
	Ignored            uint64
	RayQueries         uint64
	RayMisses          uint64
	Resets             uint64
}

// TotalDispatched returns the number of events sent to consumers.
func (s MetricsSnapshot) TotalDispatched() uint64 {
	var total uint64
	for _, n := range s.Dispatched {
		total += n
	}
	return total
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		ManipulatorEvents:  m.events[TierManipulator].Load(),
		InteractionEvents:  m.events[TierInteraction].Load(),
		Dispatched:         make(map[mouse.EventKind]uint64, kindCount),
		Handled:            m.handled.Load(),
		Consumed:           m.consumed.Load(),
		SuppressedReleases: m.suppressedReleases.Load(),
		Ignored:            m.ignored.Load(),
		RayQueries:         m.rayQueries.Load(),
		RayMisses:          m.rayMisses.Load(),
		Resets:             m.resets.Load(),
	}
	for k := range kindCount {
		if n := m.dispatched[k].Load(); n > 0 {
			s.Dispatched[mouse.EventKind(k)] = n
		}
	}
	return s
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	for i := range m.events {
		m.events[i].Store(0)
	}
	for i := range m.dispatched {
		m.dispatched[i].Store(0)
	}
	m.handled.Store(0)
	m.consumed.Store(0)
	m.suppressedReleases.Store(0)
	m.ignored.Store(0)
	m.rayQueries.Store(0)
	m.rayMisses.Store(0)
	m.resets.Store(0)
}
