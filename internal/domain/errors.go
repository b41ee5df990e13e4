package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or was discarded.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrOptionNotFound indicates a submitted option ID is not part of the current question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrInvalidTransition indicates an operation that is not legal in the session's current state.
	ErrInvalidTransition = errors.New("invalid session state for operation")
	// ErrUnknownMode indicates an unsupported quiz mode.
	ErrUnknownMode = errors.New("unknown quiz mode")
	// ErrCatalogUnavailable indicates the plant catalog could not be loaded.
	ErrCatalogUnavailable = errors.New("plant catalog unavailable")
)
