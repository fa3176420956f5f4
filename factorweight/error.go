package factorweight

import "fmt"

// ErrorKind classifies factor-weight engine failures.
type ErrorKind uint8

const (
	// UnknownState indicates a query referenced a state id the engine's
	// own state table never assigned.
	UnknownState ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownState:
		return "UnknownState"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the Kind-tagged error type for this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }
