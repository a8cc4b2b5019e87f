// Package backend turns terminal input into raw input channel events.
//
// A terminal only reports snapshots: the current button mask, modifier
// mask and cell position of each mouse report. The Translator keeps the
// previous snapshot and emits Began, Updated and Ended channel events for
// whatever changed, in the order a controller needs them: modifiers,
// then motion, then buttons, then the wheel. Motion is the per-axis deltas
// followed by the cursor position channel, and it comes before buttons so
// a press always sees the cursor position it happened at.
//
// Focus loss is reported as a reset request instead of synthetic releases.
package backend
