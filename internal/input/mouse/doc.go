// Package mouse provides the semantic mouse event types of the viewport
// controller.
//
// The controller turns raw channel events into InteractionEvent values:
//
//	ev := mouse.NewEvent(interaction, mouse.EventDown)
//	handled := consumer.HandleMouseInteraction(ev)
//
// # Buttons
//
// Button values are single bits and Buttons is a set of them. The set
// carried by an Interaction depends on the event kind:
//
//   - Down, Up, DoubleClick: exactly the acting button
//   - Move, Wheel: every button currently held
//
// # Picks
//
// A Pick carries the cursor's screen position and the world-space ray
// through it. HasRay is false when the viewport could not produce a ray,
// in which case consumers must ignore Ray.
//
// # Consumers
//
// A Consumer reports whether it acted on an event. The controller uses
// that answer to decide whether the raw input should be considered
// consumed.
package mouse
