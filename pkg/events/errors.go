package events

import "errors"

var (
	// ErrEmptyTarget indicates registration against a nil or empty target.
	// This is surfaced immediately: a missing target almost always means a
	// selector upstream matched nothing, and silently ignoring it would
	// corrupt later reasoning about what is registered.
	ErrEmptyTarget = errors.New("events: nil or empty target")

	// ErrNilCallback indicates a nil caller-supplied callback.
	ErrNilCallback = errors.New("events: nil callback")
)
