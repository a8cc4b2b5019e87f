package mouse

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/dshills/viewctl/internal/input/key"
)

// Button represents a mouse button. Button values are distinct bits so a
// set of held buttons can be stored in a Buttons value.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = 0
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = 1 << 0
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle Button = 1 << 1
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight Button = 1 << 2
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// allButtons lists every button in reporting order.
var allButtons = [...]Button{ButtonLeft, ButtonMiddle, ButtonRight}

// Buttons is a set of mouse buttons.
type Buttons uint8

// ButtonSet returns a set containing only the given buttons.
func ButtonSet(bs ...Button) Buttons {
	var s Buttons
	for _, b := range bs {
		s = s.With(b)
	}
	return s
}

// Has returns true if the set contains b.
func (s Buttons) Has(b Button) bool {
	return b != ButtonNone && s&Buttons(b) != 0
}

// With returns a new set with b added.
func (s Buttons) With(b Button) Buttons {
	return s | Buttons(b)
}

// Without returns a new set with b removed.
func (s Buttons) Without(b Button) Buttons {
	return s &^ Buttons(b)
}

// IsEmpty returns true if no buttons are in the set.
func (s Buttons) IsEmpty() bool {
	return s == 0
}

// Each calls fn for every button in the set, in left, middle, right order.
func (s Buttons) Each(fn func(Button)) {
	for _, b := range allButtons {
		if s.Has(b) {
			fn(b)
		}
	}
}

// Slice returns the buttons in the set in left, middle, right order.
func (s Buttons) Slice() []Button {
	var out []Button
	s.Each(func(b Button) {
		out = append(out, b)
	})
	return out
}

// String returns a representation like "left+right".
func (s Buttons) String() string {
	if s.IsEmpty() {
		return "none"
	}
	var parts []string
	s.Each(func(b Button) {
		parts = append(parts, b.String())
	})
	return strings.Join(parts, "+")
}

// EventKind is the semantic mouse event produced by the controller.
type EventKind uint8

const (
	// EventMove indicates the cursor moved.
	EventMove EventKind = iota
	// EventDown indicates a button was pressed.
	EventDown
	// EventUp indicates a previously pressed button was released.
	EventUp
	// EventDoubleClick indicates a second press within the double-click interval.
	EventDoubleClick
	// EventWheel indicates a scroll wheel movement.
	EventWheel
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventDown:
		return "down"
	case EventUp:
		return "up"
	case EventDoubleClick:
		return "double-click"
	case EventWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// ScreenPoint is a viewport-relative screen coordinate.
type ScreenPoint struct {
	X int
	Y int
}

// String returns "(x, y)".
func (p ScreenPoint) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Pick holds what the cursor is pointing at: its screen position and the
// world-space ray through it.
type Pick struct {
	// Screen is the cursor position in viewport screen coordinates.
	Screen ScreenPoint

	// Ray is the world-space ray through Screen. Only meaningful when HasRay
	// is true.
	Ray math32.Ray

	// HasRay is false when no ray could be computed, e.g. the cursor is
	// outside the viewport.
	HasRay bool
}

// ViewportID identifies a viewport.
type ViewportID int

// Interaction is a snapshot of the mouse and keyboard state of one
// viewport.
type Interaction struct {
	// ViewportID is the viewport the interaction happened in.
	ViewportID ViewportID

	// Pick is the cursor position and world ray.
	Pick Pick

	// Buttons are the buttons relevant to the event. For Down, Up and
	// DoubleClick this is exactly the acting button.
	Buttons Buttons

	// Modifiers are the keyboard modifiers held.
	Modifiers key.Modifier
}

// InteractionEvent is a semantic mouse event with its interaction payload.
type InteractionEvent struct {
	Interaction Interaction
	Kind        EventKind

	// WheelDelta is the scroll amount; only set for EventWheel.
	WheelDelta float32
}

// NewEvent returns an event of the given kind. Use NewWheelEvent for
// EventWheel.
func NewEvent(interaction Interaction, kind EventKind) InteractionEvent {
	return InteractionEvent{Interaction: interaction, Kind: kind}
}

// NewWheelEvent returns an EventWheel event with the given delta.
func NewWheelEvent(interaction Interaction, delta float32) InteractionEvent {
	return InteractionEvent{Interaction: interaction, Kind: EventWheel, WheelDelta: delta}
}

// Button returns the acting button of a Down, Up or DoubleClick event.
// Returns ButtonNone for other kinds.
func (e InteractionEvent) Button() Button {
	switch e.Kind {
	case EventDown, EventUp, EventDoubleClick:
		for _, b := range allButtons {
			if e.Interaction.Buttons.Has(b) {
				return b
			}
		}
	}
	return ButtonNone
}

// String returns a compact description of the event.
func (e InteractionEvent) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s viewport=%d pos=%s buttons=%s",
		e.Kind, e.Interaction.ViewportID, e.Interaction.Pick.Screen, e.Interaction.Buttons)
	if !e.Interaction.Modifiers.IsEmpty() {
		fmt.Fprintf(&sb, " mods=%s", e.Interaction.Modifiers)
	}
	if e.Kind == EventWheel {
		fmt.Fprintf(&sb, " delta=%g", e.WheelDelta)
	}
	return sb.String()
}

// Consumer receives semantic mouse events and reports whether it acted on
// them.
type Consumer interface {
	HandleMouseInteraction(event InteractionEvent) bool
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(event InteractionEvent) bool

// HandleMouseInteraction calls f(event).
func (f ConsumerFunc) HandleMouseInteraction(event InteractionEvent) bool {
	return f(event)
}
