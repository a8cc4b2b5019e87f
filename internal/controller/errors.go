package controller

import "errors"

// Errors returned by New.
var (
	// ErrNoConsumer indicates a consumer slot was left empty.
	ErrNoConsumer = errors.New("controller: missing consumer")

	// ErrNoCursorSource indicates no cursor position source was given.
	ErrNoCursorSource = errors.New("controller: missing cursor source")

	// ErrNoRaySource indicates no screen-to-world ray source was given.
	ErrNoRaySource = errors.New("controller: missing ray source")

	// ErrNoClickTiming indicates no double-click interval source was given.
	ErrNoClickTiming = errors.New("controller: missing click timing")
)
