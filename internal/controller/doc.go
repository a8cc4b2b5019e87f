// Package controller turns raw input channel events arriving on a viewport
// into semantic mouse events and routes them to one of two consumers.
//
// # Tiers
//
// The host delivers every raw event twice, once per tier, in a fixed
// order:
//
//  1. TierManipulator: the event is offered to the manipulator consumer
//  2. TierInteraction: the event is offered to the general viewport consumer
//
// Each tier is dispatched to exactly one consumer. State that must not be
// committed twice (released buttons, pending double-click timestamps) is
// only written on TierInteraction, the final tier. The Manipulator tier is
// the only one that queries the cursor position and world ray; the
// Interaction tier reuses the cached result.
//
// # Classification
//
// Classify maps a channel ID to a mouse button, the cursor motion channel,
// a keyboard modifier, the scroll wheel, or nothing. Unrecognized channels
// are reported as not consumed and cause no state change.
//
// # Consumption
//
// HandleTier returns true only when the consumer handled the event and the
// raw channel is active (Began or Updated). Releases are never reported as
// consumed so that release bookkeeping elsewhere always sees them.
//
// # Thread Safety
//
// A Controller is not safe for concurrent use. The host must deliver all
// events for a viewport from a single goroutine, one at a time.
package controller
