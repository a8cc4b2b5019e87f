// Package script implements mouse interaction consumers in Lua.
//
// A script defines up to two global functions:
//
//	function on_manipulator(ev)
//	  return ev.kind == "down" and ev.button == "left" and ev.modifiers.ctrl
//	end
//
//	function on_viewport(ev)
//	  log(ev.kind .. " at " .. ev.x .. "," .. ev.y)
//	  return false
//	end
//
// Each returns whether it handled the event. A missing function never
// handles anything. The event table has the fields kind, button (nil for
// move and wheel), buttons (array of names), modifiers (table with ctrl,
// alt and shift booleans), x, y, has_ray, origin and dir (tables with x,
// y and z, present only when has_ray is true), wheel_delta and viewport.
//
// Only the base, table, string and math libraries are opened. Script
// errors are logged and count as unhandled.
package script
