package channel

import "fmt"

// ID identifies a raw input channel reported by the input backend.
// Channel IDs are stable strings so that backends, replay scripts and
// configuration can refer to them by name.
type ID string

// Pointer channels.
const (
	// MouseLeft is the primary mouse button.
	MouseLeft ID = "mouse_button_left"
	// MouseRight is the secondary mouse button.
	MouseRight ID = "mouse_button_right"
	// MouseMiddle is the middle mouse button (wheel click).
	MouseMiddle ID = "mouse_button_middle"
	// MouseOther1 is the first extra mouse button (usually "back").
	MouseOther1 ID = "mouse_button_other1"
	// MouseOther2 is the second extra mouse button (usually "forward").
	MouseOther2 ID = "mouse_button_other2"

	// MouseMovementX is the relative horizontal motion axis.
	MouseMovementX ID = "mouse_delta_x"
	// MouseMovementY is the relative vertical motion axis.
	MouseMovementY ID = "mouse_delta_y"
	// MouseMovementZ is the vertical scroll wheel axis.
	MouseMovementZ ID = "mouse_delta_z"

	// MouseCursorPosition is the system cursor position channel. It is
	// updated whenever the cursor moves over the viewport.
	MouseCursorPosition ID = "mouse_system_cursor_position"
)

// Keyboard modifier channels. Left and right physical keys are distinct
// channels.
const (
	KeyAltL   ID = "keyboard_key_modifier_alt_l"
	KeyAltR   ID = "keyboard_key_modifier_alt_r"
	KeyCtrlL  ID = "keyboard_key_modifier_ctrl_l"
	KeyCtrlR  ID = "keyboard_key_modifier_ctrl_r"
	KeyShiftL ID = "keyboard_key_modifier_shift_l"
	KeyShiftR ID = "keyboard_key_modifier_shift_r"
	KeySuperL ID = "keyboard_key_modifier_super_l"
	KeySuperR ID = "keyboard_key_modifier_super_r"
)

// Key returns the channel ID of a non-modifier keyboard key, e.g.
// Key("escape") is "keyboard_key_escape".
func Key(name string) ID {
	return ID("keyboard_key_" + name)
}

// String returns the channel ID as a string.
func (id ID) String() string {
	return string(id)
}

// State is the activation state of an input channel.
type State uint8

const (
	// StateIdle means the channel is inactive and unchanged.
	StateIdle State = iota
	// StateBegan means the channel became active this update.
	StateBegan
	// StateUpdated means the channel was already active and is still active.
	StateUpdated
	// StateEnded means the channel became inactive this update.
	StateEnded
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBegan:
		return "began"
	case StateUpdated:
		return "updated"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// IsActive returns true for Began and Updated.
func (s State) IsActive() bool {
	return s == StateBegan || s == StateUpdated
}

// ParseState parses a state name as produced by State.String.
func ParseState(s string) (State, error) {
	switch s {
	case "idle":
		return StateIdle, nil
	case "began", "begin":
		return StateBegan, nil
	case "updated", "update":
		return StateUpdated, nil
	case "ended", "end":
		return StateEnded, nil
	}
	return StateIdle, fmt.Errorf("unknown channel state %q", s)
}

// Event is one raw input channel event as reported by the backend.
type Event struct {
	// ID identifies the channel.
	ID ID

	// State is the channel's activation state.
	State State

	// Value is the channel's scalar value. Buttons report 1 while active
	// and 0 otherwise; axes report their delta.
	Value float32
}

// IsActive returns true if the event's channel is active (Began or Updated).
func (e Event) IsActive() bool {
	return e.State.IsActive()
}

// String returns a compact representation like "mouse_button_left:began".
func (e Event) String() string {
	if e.Value != 0 {
		return fmt.Sprintf("%s:%s(%g)", e.ID, e.State, e.Value)
	}
	return fmt.Sprintf("%s:%s", e.ID, e.State)
}

// Began returns a Began event for the channel with value 1.
func Began(id ID) Event {
	return Event{ID: id, State: StateBegan, Value: 1}
}

// Updated returns an Updated event for the channel with the given value.
func Updated(id ID, value float32) Event {
	return Event{ID: id, State: StateUpdated, Value: value}
}

// Ended returns an Ended event for the channel.
func Ended(id ID) Event {
	return Event{ID: id, State: StateEnded}
}
