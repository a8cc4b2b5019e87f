// Package replay plays scripted raw input through a viewport controller
// without a terminal.
//
// A script is a YAML document:
//
//	version: 1
//	viewport: 1
//	interval_ms: 300
//	size: [80, 24]
//	manipulator_handles: [down]
//	viewport_handles: [down, double-click]
//	steps:
//	  - at: 0
//	    cursor: [10, 5]
//	    channel: mouse_system_cursor_position
//	    state: updated
//	  - at: 10
//	    channel: mouse_button_left
//	    state: began
//	  - at: 40
//	    channel: mouse_button_left
//	    state: ended
//	  - at: 90
//	    focus_lost: true
//
// Each step advances the tick clock to its at offset in milliseconds,
// optionally moves the cursor, then either resets input (focus_lost) or
// delivers one raw channel event through the full priority loop. Moving
// the cursor does not by itself refresh the controller's pick; a cursor
// position event does. The
// *_handles lists say which event kinds the stand-in consumers claim.
//
// A Recorder captures live input in the same format, so a terminal session
// can be saved and replayed later.
package replay
