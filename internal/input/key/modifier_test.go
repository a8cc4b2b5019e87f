package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModCtrl | ModAlt | ModShift, ModShift, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierDistinctBits(t *testing.T) {
	if ModAlt&ModShift != 0 || ModAlt&ModCtrl != 0 || ModShift&ModCtrl != 0 {
		t.Fatalf("modifier bits overlap: alt=%b shift=%b ctrl=%b", ModAlt, ModShift, ModCtrl)
	}
}

func TestModifierWith(t *testing.T) {
	mod := ModNone
	mod = mod.With(ModCtrl)
	if !mod.HasCtrl() {
		t.Error("With(ModCtrl) should set Ctrl")
	}

	mod = mod.With(ModAlt)
	if !mod.HasCtrl() || !mod.HasAlt() {
		t.Error("With(ModAlt) should keep Ctrl and add Alt")
	}

	if mod.With(ModAlt) != mod {
		t.Error("With should be idempotent")
	}
}

func TestModifierWithout(t *testing.T) {
	mod := ModCtrl | ModAlt | ModShift
	mod = mod.Without(ModAlt)
	if mod.HasAlt() {
		t.Error("Without(ModAlt) should remove Alt")
	}
	if !mod.HasCtrl() || !mod.HasShift() {
		t.Error("Without(ModAlt) should keep Ctrl and Shift")
	}
	if mod.Without(ModAlt) != mod {
		t.Error("Without of an absent modifier should be a no-op")
	}
}

func TestModifierIsEmpty(t *testing.T) {
	if !ModNone.IsEmpty() {
		t.Error("ModNone.IsEmpty() = false")
	}
	if ModShift.IsEmpty() {
		t.Error("ModShift.IsEmpty() = true")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModShift | ModAlt | ModCtrl, "Ctrl+Alt+Shift"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierEach(t *testing.T) {
	var seen []Modifier
	(ModShift | ModCtrl).Each(func(m Modifier) {
		seen = append(seen, m)
	})
	if len(seen) != 2 || seen[0] != ModCtrl || seen[1] != ModShift {
		t.Errorf("Each visited %v, want [Ctrl Shift]", seen)
	}
}
