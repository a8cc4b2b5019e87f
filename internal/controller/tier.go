package controller

// Tier is one of the two passes a raw event makes through the controller.
type Tier uint8

const (
	// TierManipulator is processed first and dispatches to the
	// manipulator consumer.
	TierManipulator Tier = iota

	// TierInteraction is processed last and dispatches to the general
	// viewport consumer. State is committed on this tier.
	TierInteraction

	tierCount
)

// String returns a string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierManipulator:
		return "manipulator"
	case TierInteraction:
		return "interaction"
	default:
		return "unknown"
	}
}

// IsFinal returns true for the tier on which state mutations are committed.
func (t Tier) IsFinal() bool {
	return t == TierInteraction
}

// Priority is the host's controller priority at which an event is
// delivered. The host delivers each raw event at every priority from
// PriorityHighest down to PriorityLowest until one consumes it.
type Priority uint8

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
)

// Priorities lists all priorities in delivery order.
var Priorities = [...]Priority{
	PriorityHighest,
	PriorityHigh,
	PriorityNormal,
	PriorityLow,
	PriorityLowest,
}

// String returns a string representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "lowest"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// Tier returns the tier handled at this priority. Manipulator events are
// handled at PriorityHighest and viewport interaction events at
// PriorityHigh; other priorities are not handled by the controller.
func (p Priority) Tier() (Tier, bool) {
	switch p {
	case PriorityHighest:
		return TierManipulator, true
	case PriorityHigh:
		return TierInteraction, true
	default:
		return 0, false
	}
}
