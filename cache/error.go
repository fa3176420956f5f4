// Package cache implements the per-state arc/final-weight cache that
// backs the lazy Fst substrate (spec.md §4.H): once a state is expanded
// its arcs and final weight are stored here and never recomputed.
package cache

import "fmt"

// ErrorKind classifies cache usage errors.
type ErrorKind uint8

const (
	// Reentrant indicates BeginExpand was called for a state whose
	// expansion is already in progress, or PushArc was called for a
	// state with no expansion in progress — the
	// single-threaded model's stand-in for the teacher's concurrent-
	// access guard (spec.md §4.H).
	Reentrant ErrorKind = iota
	// StatesExceeded indicates a new state was about to be cached beyond
	// the configured MaxStates limit (config.CacheConfig.MaxStates).
	StatesExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case Reentrant:
		return "Reentrant"
	case StatesExceeded:
		return "StatesExceeded"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the Kind-tagged error type for this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
