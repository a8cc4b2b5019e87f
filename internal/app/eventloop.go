package app

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

// handleEvent processes a single backend event. It returns ErrQuit when
// the user asks to leave.
func (app *Application) handleEvent(ev tcell.Event) error {
	if isQuit(ev) {
		return ErrQuit
	}

	batch := app.translator.Translate(ev)
	if batch.Resized {
		app.resize(batch.Width, batch.Height)
	}
	if batch.IsEmpty() {
		return nil
	}

	now := app.opts.Clock()
	app.manager.UpdateViewport(now)

	if batch.Reset {
		app.manager.ResetInputChannels()
		app.status.add("focus lost: input reset")
		if app.recorder != nil {
			app.recorder.RecordReset(now)
		}
	}

	id := app.opts.Viewport
	for _, e := range batch.Events {
		if app.recorder != nil {
			app.recorder.Record(now, e, app.translator.CursorScreenPosition(id))
		}
		if _, err := app.manager.Deliver(id, e); err != nil {
			app.logger.Error("deliver failed",
				slog.String("event", e.String()),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

func isQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch k.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return k.Rune() == 'q'
	}
	return false
}

func (app *Application) resize(w, h int) {
	app.camera.SetSize(w, h)
	if app.recorder != nil {
		app.recorder.SetSize(w, h)
	}
	app.logger.Debug("viewport resized", slog.Int("width", w), slog.Int("height", h))
}

// render draws the status area.
func (app *Application) render() {
	b := app.backend
	if b == nil {
		return
	}
	b.Clear()
	_, h := b.Size()

	header := tcell.StyleDefault.Bold(true)
	b.DrawText(0, 0, "viewctl  (q to quit)", header)

	c, ok := app.manager.Controller(app.opts.Viewport)
	if ok {
		in := c.Interaction()
		b.DrawText(0, 1, "cursor "+in.Pick.Screen.String()+"  buttons "+in.Buttons.String()+"  mods "+in.Modifiers.String(), tcell.StyleDefault)
	}

	lines := app.status.lines()
	room := h - 3
	if room < 0 {
		room = 0
	}
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for i, line := range lines {
		b.DrawText(0, 3+i, line, tcell.StyleDefault)
	}
	b.Show()
}
