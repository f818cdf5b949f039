package dom

import "errors"

var (
	// ErrNilNode indicates an operation was attempted against an absent node.
	// Operating on a nil node almost always means a selector upstream matched
	// nothing, so it is surfaced immediately rather than silently ignored.
	ErrNilNode = errors.New("dom: nil node")

	// ErrEmptyKind indicates an event operation with an empty event kind.
	ErrEmptyKind = errors.New("dom: empty event kind")

	// ErrNilListener indicates an attempt to install a nil listener.
	ErrNilListener = errors.New("dom: nil listener")
)
