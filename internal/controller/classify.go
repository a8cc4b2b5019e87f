package controller

import (
	"github.com/dshills/viewctl/internal/input/channel"
	"github.com/dshills/viewctl/internal/input/key"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// Kind is the coarse classification of a raw input channel.
type Kind uint8

const (
	// KindNone is a channel the controller ignores.
	KindNone Kind = iota
	// KindButton is a mouse button.
	KindButton
	// KindMotion is the system cursor position channel.
	KindMotion
	// KindModifier is a keyboard modifier key.
	KindModifier
	// KindWheel is the vertical scroll wheel axis.
	KindWheel
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindMotion:
		return "motion"
	case KindModifier:
		return "modifier"
	case KindWheel:
		return "wheel"
	default:
		return "none"
	}
}

// Classification is the result of Classify. Button is set for KindButton
// and Modifier for KindModifier.
type Classification struct {
	Kind     Kind
	Button   mouse.Button
	Modifier key.Modifier
}

var buttonChannels = map[channel.ID]mouse.Button{
	channel.MouseLeft:   mouse.ButtonLeft,
	channel.MouseMiddle: mouse.ButtonMiddle,
	channel.MouseRight:  mouse.ButtonRight,
}

var modifierChannels = map[channel.ID]key.Modifier{
	channel.KeyAltL:   key.ModAlt,
	channel.KeyAltR:   key.ModAlt,
	channel.KeyCtrlL:  key.ModCtrl,
	channel.KeyCtrlR:  key.ModCtrl,
	channel.KeyShiftL: key.ModShift,
	channel.KeyShiftR: key.ModShift,
}

// Classify maps a raw channel ID to what the controller does with it.
func Classify(id channel.ID) Classification {
	if id == channel.MouseCursorPosition {
		return Classification{Kind: KindMotion}
	}
	if b, ok := buttonChannels[id]; ok {
		return Classification{Kind: KindButton, Button: b}
	}
	if m, ok := modifierChannels[id]; ok {
		return Classification{Kind: KindModifier, Modifier: m}
	}
	if id == channel.MouseMovementZ {
		return Classification{Kind: KindWheel}
	}
	return Classification{Kind: KindNone}
}
