package controller

import (
	"cogentcore.org/core/math32"

	"github.com/dshills/viewctl/internal/input/key"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// tracker owns the running interaction state of one viewport: held
// buttons, held modifiers and the last cursor pick.
//
// Every write that depends on the tier takes the tier explicitly so the
// commit rule is checked at the mutation site.
type tracker struct {
	pick      mouse.Pick
	buttons   mouse.Buttons
	modifiers key.Modifier
}

// updatePick stores the cursor position and world ray. Only the
// manipulator tier writes; later tiers reuse the cached pick.
func (t *tracker) updatePick(tier Tier, screen mouse.ScreenPoint, ray math32.Ray, hasRay bool) bool {
	if tier != TierManipulator {
		return false
	}
	t.pick.Screen = screen
	if hasRay {
		t.pick.Ray = ray
	} else {
		t.pick.Ray = math32.Ray{}
	}
	t.pick.HasRay = hasRay
	return true
}

// pressButton records b as held. Presses are recorded on every tier so
// that later steps of the same pass read a consistent button set.
func (t *tracker) pressButton(b mouse.Button, _ Tier) {
	t.buttons = t.buttons.With(b)
}

// releaseButton clears b, but only on the final tier.
func (t *tracker) releaseButton(b mouse.Button, tier Tier) bool {
	if !tier.IsFinal() {
		return false
	}
	t.buttons = t.buttons.Without(b)
	return true
}

// isHeld returns true if b is recorded as held.
func (t *tracker) isHeld(b mouse.Button) bool {
	return t.buttons.Has(b)
}

// setModifier activates or deactivates m. Modifiers are not tier-gated.
func (t *tracker) setModifier(m key.Modifier, active bool) {
	if active {
		t.modifiers = t.modifiers.With(m)
	} else {
		t.modifiers = t.modifiers.Without(m)
	}
}

// snapshot returns a copy of the state as an Interaction.
func (t *tracker) snapshot(viewport mouse.ViewportID) mouse.Interaction {
	return mouse.Interaction{
		ViewportID: viewport,
		Pick:       t.pick,
		Buttons:    t.buttons,
		Modifiers:  t.modifiers,
	}
}

// reset returns the tracker to its zero state.
func (t *tracker) reset() {
	*t = tracker{}
}
