package controller

import (
	"time"

	"github.com/dshills/viewctl/internal/input/mouse"
)

// clickTracker holds the pending double-click timestamp of each button.
// A button has at most one pending timestamp; a new first click simply
// overwrites it.
type clickTracker struct {
	pending map[mouse.Button]time.Time
}

func newClickTracker() *clickTracker {
	return &clickTracker{pending: make(map[mouse.Button]time.Time)}
}

// isDoubleClick reports whether a press of b at now falls within interval
// of b's pending first click.
func (t *clickTracker) isDoubleClick(b mouse.Button, now time.Time, interval time.Duration) bool {
	first, ok := t.pending[b]
	if !ok {
		return false
	}

	// Ticks are monotonic; a negative elapsed time means the host's clock
	// went backwards, which starts a new sequence.
	elapsed := now.Sub(first)
	if elapsed < 0 {
		return false
	}
	return elapsed < interval
}

// register records now as b's pending first click. Final tier only.
func (t *clickTracker) register(b mouse.Button, now time.Time, tier Tier) bool {
	if !tier.IsFinal() {
		return false
	}
	t.pending[b] = now
	return true
}

// forget removes b's pending click. Final tier only.
func (t *clickTracker) forget(b mouse.Button, tier Tier) bool {
	if !tier.IsFinal() {
		return false
	}
	delete(t.pending, b)
	return true
}

// pendingAt returns b's pending timestamp, if any.
func (t *clickTracker) pendingAt(b mouse.Button) (time.Time, bool) {
	ts, ok := t.pending[b]
	return ts, ok
}

// reset drops every pending click.
func (t *clickTracker) reset() {
	clear(t.pending)
}
