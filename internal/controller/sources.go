package controller

import (
	"time"

	"cogentcore.org/core/math32"

	"github.com/dshills/viewctl/internal/input/mouse"
)

// CursorSource reports the cursor position within a viewport.
type CursorSource interface {
	CursorScreenPosition(viewport mouse.ViewportID) mouse.ScreenPoint
}

// RaySource computes the world-space ray through a screen position. It
// returns false when no ray exists, e.g. the point is outside the viewport.
type RaySource interface {
	ScreenToWorldRay(viewport mouse.ViewportID, p mouse.ScreenPoint) (math32.Ray, bool)
}

// ClickTiming reports the platform double-click interval. It is queried on
// every press and never cached by the controller.
type ClickTiming interface {
	DoubleClickInterval() time.Duration
}

// CursorFunc adapts a function to CursorSource.
type CursorFunc func(viewport mouse.ViewportID) mouse.ScreenPoint

// CursorScreenPosition calls f(viewport).
func (f CursorFunc) CursorScreenPosition(viewport mouse.ViewportID) mouse.ScreenPoint {
	return f(viewport)
}

// RayFunc adapts a function to RaySource.
type RayFunc func(viewport mouse.ViewportID, p mouse.ScreenPoint) (math32.Ray, bool)

// ScreenToWorldRay calls f(viewport, p).
func (f RayFunc) ScreenToWorldRay(viewport mouse.ViewportID, p mouse.ScreenPoint) (math32.Ray, bool) {
	return f(viewport, p)
}

// FixedInterval is a ClickTiming with a constant interval.
type FixedInterval time.Duration

// DoubleClickInterval returns the interval.
func (f FixedInterval) DoubleClickInterval() time.Duration {
	return time.Duration(f)
}
