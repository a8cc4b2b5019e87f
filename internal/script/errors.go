package script

import "errors"

var (
	// ErrScriptClosed is returned when operating on a closed script.
	ErrScriptClosed = errors.New("script: closed")

	// ErrNotFunction is returned when a handler global is not a function.
	ErrNotFunction = errors.New("script: handler is not a function")
)
