package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

func ids(events []channel.Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.String()
	}
	return out
}

func assertEvents(t *testing.T, got []channel.Event, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("events = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, g[i], want[i])
		}
	}
}

func TestFirstReportEmitsCursorPosition(t *testing.T) {
	tr := NewTranslator(0)
	b := tr.Translate(tcell.NewEventMouse(5, 6, tcell.ButtonNone, tcell.ModNone))

	assertEvents(t, b.Events, "mouse_system_cursor_position:updated")
	if got := tr.CursorScreenPosition(0); got != (mouse.ScreenPoint{X: 5, Y: 6}) {
		t.Errorf("cursor = %s", got)
	}
}

func TestMotionDeltas(t *testing.T) {
	tr := NewTranslator(0)
	tr.Translate(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))

	b := tr.Translate(tcell.NewEventMouse(8, 3, tcell.ButtonNone, tcell.ModNone))
	assertEvents(t, b.Events,
		"mouse_delta_x:updated(3)",
		"mouse_delta_y:updated(-2)",
		"mouse_system_cursor_position:updated",
	)

	// Same position, same buttons: nothing to report.
	b = tr.Translate(tcell.NewEventMouse(8, 3, tcell.ButtonNone, tcell.ModNone))
	if !b.IsEmpty() {
		t.Errorf("unchanged report produced %v", ids(b.Events))
	}
}

func TestButtonTransitions(t *testing.T) {
	tr := NewTranslator(0)
	tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	b := tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_button_left:began(1)")

	b = tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary|tcell.ButtonSecondary, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_button_right:began(1)")

	b = tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_button_left:ended", "mouse_button_right:ended")
}

func TestMiddleButton(t *testing.T) {
	tr := NewTranslator(0)
	tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	b := tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonMiddle, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_button_middle:began(1)")
}

func TestPressAfterMotionAndModifiers(t *testing.T) {
	tr := NewTranslator(0)
	tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	b := tr.Translate(tcell.NewEventMouse(2, 0, tcell.ButtonPrimary, tcell.ModCtrl|tcell.ModShift))
	assertEvents(t, b.Events,
		"keyboard_key_modifier_ctrl_l:began(1)",
		"keyboard_key_modifier_shift_l:began(1)",
		"mouse_delta_x:updated(2)",
		"mouse_system_cursor_position:updated",
		"mouse_button_left:began(1)",
	)

	b = tr.Translate(tcell.NewEventMouse(2, 0, tcell.ButtonPrimary, tcell.ModShift))
	assertEvents(t, b.Events, "keyboard_key_modifier_ctrl_l:ended")
}

func TestWheel(t *testing.T) {
	tr := NewTranslator(2.5)
	tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	b := tr.Translate(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_delta_z:updated(2.5)")

	// Wheel is never held; a repeated notch reports again.
	b = tr.Translate(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_delta_z:updated(-2.5)")

	tr.SetWheelStep(1)
	b = tr.Translate(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	assertEvents(t, b.Events, "mouse_delta_z:updated(1)")
}

func TestFocusLossResets(t *testing.T) {
	tr := NewTranslator(0)
	tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModAlt))

	b := tr.Translate(tcell.NewEventFocus(false))
	if !b.Reset || len(b.Events) != 0 {
		t.Fatalf("focus loss batch = %+v", b)
	}

	// After a reset the still-held button is reported as a new press.
	b = tr.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModAlt))
	assertEvents(t, b.Events, "keyboard_key_modifier_alt_l:began(1)", "mouse_button_left:began(1)")

	if b := tr.Translate(tcell.NewEventFocus(true)); !b.IsEmpty() {
		t.Errorf("focus gain batch = %+v", b)
	}
}

func TestKeyTap(t *testing.T) {
	tr := NewTranslator(0)

	b := tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'F', tcell.ModNone))
	assertEvents(t, b.Events, "keyboard_key_f:began(1)", "keyboard_key_f:ended")

	b = tr.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assertEvents(t, b.Events, "keyboard_key_esc:began(1)", "keyboard_key_esc:ended")
}

func TestResize(t *testing.T) {
	tr := NewTranslator(0)
	b := tr.Translate(tcell.NewEventResize(120, 40))
	if !b.Resized || b.Width != 120 || b.Height != 40 {
		t.Errorf("resize batch = %+v", b)
	}
}
