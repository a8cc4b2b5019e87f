// Package channel defines the raw input vocabulary shared by input
// backends and the viewport controller.
//
// A backend reports every physical input (a button, an axis, a key) as a
// channel with a stable ID and an activation state:
//
//	ev := channel.Event{ID: channel.MouseLeft, State: channel.StateBegan, Value: 1}
//
// Channel states follow the usual lifecycle. A button goes Began, then
// optionally Updated while held, then Ended. Axes such as the scroll wheel
// report Began or Updated with their delta in Value.
//
// Events in this package carry no interpretation. Mapping a channel to a
// mouse button, a keyboard modifier or the scroll wheel is done by the
// controller package.
package channel
