package controller

import (
	"testing"

	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/key"
	"github.com/dshills/viewctl/internal/input/mouse"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		id   channel.ID
		want Classification
	}{
		{channel.MouseLeft, Classification{Kind: KindButton, Button: mouse.ButtonLeft}},
		{channel.MouseMiddle, Classification{Kind: KindButton, Button: mouse.ButtonMiddle}},
		{channel.MouseRight, Classification{Kind: KindButton, Button: mouse.ButtonRight}},
		{channel.MouseCursorPosition, Classification{Kind: KindMotion}},
		{channel.MouseMovementZ, Classification{Kind: KindWheel}},
		{channel.KeyAltL, Classification{Kind: KindModifier, Modifier: key.ModAlt}},
		{channel.KeyAltR, Classification{Kind: KindModifier, Modifier: key.ModAlt}},
		{channel.KeyCtrlL, Classification{Kind: KindModifier, Modifier: key.ModCtrl}},
		{channel.KeyCtrlR, Classification{Kind: KindModifier, Modifier: key.ModCtrl}},
		{channel.KeyShiftL, Classification{Kind: KindModifier, Modifier: key.ModShift}},
		{channel.KeyShiftR, Classification{Kind: KindModifier, Modifier: key.ModShift}},
		{channel.MouseOther1, Classification{Kind: KindNone}},
		{channel.MouseMovementX, Classification{Kind: KindNone}},
		{channel.MouseMovementY, Classification{Kind: KindNone}},
		{channel.KeySuperL, Classification{Kind: KindNone}},
		{channel.Key("a"), Classification{Kind: KindNone}},
		{"", Classification{Kind: KindNone}},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if got := Classify(tt.id); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{KindButton, "button"},
		{KindMotion, "motion"},
		{KindModifier, "modifier"},
		{KindWheel, "wheel"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
