package bus

import (
	"testing"

	"github.com/dshills/viewctl/internal/input/mouse"
)

func event(kind mouse.EventKind) mouse.InteractionEvent {
	return mouse.NewEvent(mouse.Interaction{ViewportID: 1}, kind)
}

func TestEmptySlotDoesNotHandle(t *testing.T) {
	b := New()
	if b.Manipulator().HandleMouseInteraction(event(mouse.EventMove)) {
		t.Error("empty manipulator slot handled event")
	}
	if b.Viewport().HandleMouseInteraction(event(mouse.EventMove)) {
		t.Error("empty viewport slot handled event")
	}
}

func TestFirstHandlerWins(t *testing.T) {
	b := New()
	var order []string

	b.ConnectViewport(func(mouse.InteractionEvent) bool {
		order = append(order, "normal")
		return true
	})
	b.ConnectViewport(func(mouse.InteractionEvent) bool {
		order = append(order, "high-declines")
		return false
	}, WithPriority(PriorityHigh))
	b.ConnectViewport(func(mouse.InteractionEvent) bool {
		order = append(order, "low")
		return true
	}, WithPriority(PriorityLow))

	if !b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Fatal("event not handled")
	}

	want := []string{"high-declines", "normal"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestEqualPriorityKeepsConnectOrder(t *testing.T) {
	b := New()
	var got []int
	for i := range 3 {
		b.ConnectManipulator(func(mouse.InteractionEvent) bool {
			got = append(got, i)
			return false
		})
	}

	b.Manipulator().HandleMouseInteraction(event(mouse.EventMove))

	for i, v := range got {
		if v != i {
			t.Fatalf("call order = %v", got)
		}
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	b := New()
	b.ConnectManipulator(func(mouse.InteractionEvent) bool { return true })

	if b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Error("viewport slot handled a manipulator connection's event")
	}
	if m, v := b.Count(); m != 1 || v != 0 {
		t.Errorf("Count() = %d, %d; want 1, 0", m, v)
	}
}

func TestDisconnect(t *testing.T) {
	b := New()
	conn := b.ConnectViewport(func(mouse.InteractionEvent) bool { return true })

	if conn.ID() == "" {
		t.Fatal("connection has no ID")
	}
	if conn.Name() != conn.ID() {
		t.Errorf("Name() = %q, want ID", conn.Name())
	}

	conn.Disconnect()
	conn.Disconnect()

	if conn.State() != StateDisconnected {
		t.Errorf("State() = %s", conn.State())
	}
	if b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Error("disconnected handler still receives events")
	}
	if _, v := b.Count(); v != 0 {
		t.Errorf("viewport count = %d", v)
	}
}

func TestPauseResume(t *testing.T) {
	b := New()
	conn := b.ConnectViewport(func(mouse.InteractionEvent) bool { return true }, WithName("camera"))

	conn.Pause()
	if b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Error("paused handler received event")
	}

	conn.Resume()
	if !b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Error("resumed handler did not receive event")
	}
	if conn.Name() != "camera" {
		t.Errorf("Name() = %q", conn.Name())
	}
}

func TestFilter(t *testing.T) {
	b := New()
	var seen []mouse.EventKind
	b.ConnectManipulator(func(ev mouse.InteractionEvent) bool {
		seen = append(seen, ev.Kind)
		return true
	}, WithFilter(Kinds(mouse.EventDown, mouse.EventUp)))

	tests := []struct {
		kind mouse.EventKind
		want bool
	}{
		{mouse.EventMove, false},
		{mouse.EventDown, true},
		{mouse.EventWheel, false},
		{mouse.EventUp, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := b.Manipulator().HandleMouseInteraction(event(tt.kind)); got != tt.want {
				t.Errorf("handled = %v, want %v", got, tt.want)
			}
		})
	}
	if len(seen) != 2 {
		t.Errorf("handler saw %v", seen)
	}
}

func TestOnceDisconnectsAfterHandling(t *testing.T) {
	b := New()
	calls := 0
	conn := b.ConnectViewport(func(mouse.InteractionEvent) bool {
		calls++
		return calls > 1
	}, WithOnce())

	b.Viewport().HandleMouseInteraction(event(mouse.EventDown))
	if !conn.IsActive() {
		t.Fatal("once connection dropped before handling anything")
	}

	b.Viewport().HandleMouseInteraction(event(mouse.EventDown))
	b.Viewport().HandleMouseInteraction(event(mouse.EventDown))

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if conn.State() != StateDisconnected {
		t.Errorf("State() = %s", conn.State())
	}
}

func TestDisconnectDuringDispatch(t *testing.T) {
	b := New()
	var second *Connection
	b.ConnectViewport(func(mouse.InteractionEvent) bool {
		second.Disconnect()
		return false
	})
	second = b.ConnectViewport(func(mouse.InteractionEvent) bool { return true })

	// The snapshot taken at dispatch still holds second, but it is no
	// longer active.
	if b.Viewport().HandleMouseInteraction(event(mouse.EventDown)) {
		t.Error("handler disconnected mid-dispatch still handled event")
	}
}
