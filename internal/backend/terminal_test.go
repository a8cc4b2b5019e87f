package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	sim.SetSize(w, h)
	return term, sim
}

func TestTerminalSize(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 10)
	if w, h := term.Size(); w != 40 || h != 10 {
		t.Errorf("Size() = %d, %d", w, h)
	}
}

func TestTerminalDrawTextClips(t *testing.T) {
	term, sim := newSimTerminal(t, 5, 2)

	term.DrawText(2, 0, "hello", tcell.StyleDefault)
	term.DrawText(0, 5, "off screen", tcell.StyleDefault)
	term.Show()

	r, _, _, _ := sim.GetContent(2, 0) //nolint:staticcheck // GetContent is the correct API
	if r != 'h' {
		t.Errorf("cell (2,0) = %q, want 'h'", r)
	}
	r, _, _, _ = sim.GetContent(4, 0) //nolint:staticcheck // GetContent is the correct API
	if r != 'l' {
		t.Errorf("cell (4,0) = %q, want 'l'", r)
	}
}

func TestTerminalPostedEventsAreTranslatable(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 10)

	if err := term.PostEvent(tcell.NewEventMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	tr := NewTranslator(0)
	for {
		ev := term.PollEvent()
		if ev == nil {
			t.Fatal("event queue closed")
		}
		if _, ok := ev.(*tcell.EventMouse); !ok {
			// Initial resize and other housekeeping events.
			continue
		}
		b := tr.Translate(ev)
		assertEvents(t, b.Events,
			"mouse_system_cursor_position:updated",
			"mouse_button_left:began(1)",
		)
		return
	}
}
