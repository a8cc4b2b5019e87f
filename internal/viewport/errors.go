package viewport

import "errors"

var (
	// ErrViewportExists is returned when registering an ID twice.
	ErrViewportExists = errors.New("viewport: already registered")

	// ErrViewportNotFound is returned for an unregistered ID.
	ErrViewportNotFound = errors.New("viewport: not found")
)
