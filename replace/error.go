package replace

import "fmt"

// ErrorKind classifies replace-engine failures.
type ErrorKind uint8

const (
	// UnknownNonTerminal indicates the root label, or the label of a
	// frame being expanded, has no entry in the non-terminal table
	// passed to New. Arcs whose labels match no entry are ordinary arcs.
	UnknownNonTerminal ErrorKind = iota
	// UnknownState indicates a query referenced a state id the engine's
	// own state table never assigned.
	UnknownState
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownNonTerminal:
		return "UnknownNonTerminal"
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
