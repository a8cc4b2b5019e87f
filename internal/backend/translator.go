package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// DefaultWheelStep is the wheel axis value emitted per notch.
const DefaultWheelStep = 1.0

// Batch is the translation of one terminal event.
type Batch struct {
	// Events are the raw channel events, in delivery order.
	Events []channel.Event

	// Reset is set when the host must reset every controller's input
	// state, e.g. because the terminal lost focus.
	Reset bool

	// Resized is set when the terminal changed size.
	Resized bool

	// Width and Height are the new size when Resized is set.
	Width, Height int
}

// IsEmpty returns true if the batch carries nothing for the host.
func (b Batch) IsEmpty() bool {
	return len(b.Events) == 0 && !b.Reset && !b.Resized
}

var buttonChannels = [...]struct {
	mask tcell.ButtonMask
	id   channel.ID
}{
	{tcell.ButtonPrimary, channel.MouseLeft},
	{tcell.ButtonSecondary, channel.MouseRight},
	{tcell.ButtonMiddle, channel.MouseMiddle},
}

var modifierChannels = [...]struct {
	mask tcell.ModMask
	id   channel.ID
}{
	{tcell.ModCtrl, channel.KeyCtrlL},
	{tcell.ModAlt, channel.KeyAltL},
	{tcell.ModShift, channel.KeyShiftL},
}

// Translator converts tcell events into raw channel events. It also serves
// as the cursor position source for a single viewport.
type Translator struct {
	mu sync.Mutex

	wheelStep float32

	buttons tcell.ButtonMask
	mods    tcell.ModMask
	pos     mouse.ScreenPoint
	seen    bool
}

// NewTranslator creates a translator emitting wheelStep per wheel notch.
// A non-positive step uses DefaultWheelStep.
func NewTranslator(wheelStep float32) *Translator {
	if wheelStep <= 0 {
		wheelStep = DefaultWheelStep
	}
	return &Translator{wheelStep: wheelStep}
}

// SetWheelStep changes the wheel step.
func (t *Translator) SetWheelStep(step float32) {
	if step <= 0 {
		return
	}
	t.mu.Lock()
	t.wheelStep = step
	t.mu.Unlock()
}

// CursorScreenPosition returns the last reported mouse position.
func (t *Translator) CursorScreenPosition(mouse.ViewportID) mouse.ScreenPoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// Translate converts ev. Unrecognized events produce an empty batch.
func (t *Translator) Translate(ev tcell.Event) Batch {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := ev.(type) {
	case *tcell.EventMouse:
		return Batch{Events: t.mouse(e)}

	case *tcell.EventKey:
		return Batch{Events: t.key(e)}

	case *tcell.EventFocus:
		if e.Focused {
			return Batch{}
		}
		t.forget()
		return Batch{Reset: true}

	case *tcell.EventResize:
		w, h := e.Size()
		return Batch{Resized: true, Width: w, Height: h}
	}
	return Batch{}
}

func (t *Translator) mouse(e *tcell.EventMouse) []channel.Event {
	var out []channel.Event

	out = t.diffModifiers(out, e.Modifiers())

	x, y := e.Position()
	switch {
	case !t.seen:
		t.pos = mouse.ScreenPoint{X: x, Y: y}
		t.seen = true
		out = append(out, channel.Updated(channel.MouseCursorPosition, 0))
	case x != t.pos.X || y != t.pos.Y:
		if dx := x - t.pos.X; dx != 0 {
			out = append(out, channel.Updated(channel.MouseMovementX, float32(dx)))
		}
		if dy := y - t.pos.Y; dy != 0 {
			out = append(out, channel.Updated(channel.MouseMovementY, float32(dy)))
		}
		t.pos = mouse.ScreenPoint{X: x, Y: y}
		out = append(out, channel.Updated(channel.MouseCursorPosition, 0))
	}

	mask := e.Buttons()
	for _, bc := range buttonChannels {
		was := t.buttons&bc.mask != 0
		is := mask&bc.mask != 0
		switch {
		case is && !was:
			out = append(out, channel.Began(bc.id))
		case was && !is:
			out = append(out, channel.Ended(bc.id))
		}
	}
	t.buttons = mask & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	// Wheel notches are momentary, never held.
	if mask&tcell.WheelUp != 0 {
		out = append(out, channel.Updated(channel.MouseMovementZ, t.wheelStep))
	}
	if mask&tcell.WheelDown != 0 {
		out = append(out, channel.Updated(channel.MouseMovementZ, -t.wheelStep))
	}
	return out
}

func (t *Translator) diffModifiers(out []channel.Event, mods tcell.ModMask) []channel.Event {
	for _, mc := range modifierChannels {
		was := t.mods&mc.mask != 0
		is := mods&mc.mask != 0
		switch {
		case is && !was:
			out = append(out, channel.Began(mc.id))
		case was && !is:
			out = append(out, channel.Ended(mc.id))
		}
	}
	t.mods = mods & (tcell.ModCtrl | tcell.ModAlt | tcell.ModShift)
	return out
}

// key reports a key as a tap. Terminals do not report key releases, and
// bare modifier presses never arrive as key events.
func (t *Translator) key(e *tcell.EventKey) []channel.Event {
	name := KeyName(e)
	if name == "" {
		return nil
	}
	id := channel.Key(name)
	return []channel.Event{channel.Began(id), channel.Ended(id)}
}

// forget drops the tracked masks so the next report starts fresh.
func (t *Translator) forget() {
	t.buttons = 0
	t.mods = 0
}

// KeyName returns the lower-case channel name of a key event, or "" if
// the key has none.
func KeyName(e *tcell.EventKey) string {
	if e.Key() == tcell.KeyRune {
		return strings.ToLower(string(e.Rune()))
	}
	name, ok := tcell.KeyNames[e.Key()]
	if !ok {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
