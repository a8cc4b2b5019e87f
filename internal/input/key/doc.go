// Package key defines the logical keyboard modifier set tracked by the
// viewport controller.
//
// Only Alt, Ctrl and Shift are tracked. Left and right physical keys are
// folded into the same logical modifier before they reach this package.
package key
