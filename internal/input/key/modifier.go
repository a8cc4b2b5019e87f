package key

import "strings"

// Modifier is a set of logical keyboard modifiers. Left and right
// physical keys map to the same logical modifier.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 1 << iota

	// ModShift indicates the Shift key.
	ModShift

	// ModCtrl indicates the Control key.
	ModCtrl
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is held.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Each calls fn for every modifier in the set, in Ctrl, Alt, Shift order.
func (m Modifier) Each(fn func(Modifier)) {
	for _, mod := range [...]Modifier{ModCtrl, ModAlt, ModShift} {
		if m.Has(mod) {
			fn(mod)
		}
	}
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	m.Each(func(mod Modifier) {
		parts = append(parts, modifierNames[mod])
	})
	return strings.Join(parts, "+")
}

var modifierNames = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModShift: "Shift",
}
