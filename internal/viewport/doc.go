// Package viewport hosts one input controller per viewport.
//
// The Manager plays the part of the host's controller list: it delivers a
// raw event to a viewport's controller at every priority from
// PriorityHighest down to PriorityLowest and stops at the first priority
// that consumes it. It also fans out tick updates and input resets to
// every registered viewport.
//
// Controllers are not safe for concurrent use; the Manager serializes all
// access to them.
package viewport
