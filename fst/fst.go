// Package fst defines the mutable FST contract (spec.md §4.B) that the
// composition core reads and writes, plus the concrete data model
// (labels, state ids, arcs, properties) shared by every layer above it.
//
// The concrete mutable/vector representation (VectorFst in this package)
// and its (de)serialization are explicitly out of scope for the core per
// spec.md §1 — they are external collaborators. VectorFst exists here
// only because every test and every example in this repo needs *some*
// concrete Fst to exercise the core against; production callers may
// supply their own MutableFst implementation instead.
package fst

import "math"

// Label is a non-negative integer drawn from the input or output
// alphabet. Labels fit in a machine word (spec.md §3).
type Label uint64

const (
	// Eps is the empty symbol: an arc labeled Eps consumes/produces
	// nothing on that side.
	Eps Label = 0

	// NoLabel is the reserved sentinel for "no label / super-final
	// edge", used by label reachability's auxiliary construction and by
	// the sorted matcher's "match anything" mode.
	NoLabel Label = math.MaxUint64
)

// StateID is a dense, non-negative state index.
type StateID uint64

// NoStateID is the sentinel for "no state".
const NoStateID StateID = math.MaxUint64

// Arc is an immutable transition tuple. Arcs belong to a source state by
// virtue of storage position; an arc has no identity of its own.
type Arc[W any] struct {
	ILabel    Label
	OLabel    Label
	Weight    W
	NextState StateID
}

// Properties is a bitset of assertions a caller makes about an FST's
// arc ordering. The core only ever reads these two bits (spec.md §6);
// it never recomputes them, and treats them as caller-maintained
// invariants rather than derived facts.
type Properties uint32

const (
	// ILabelSorted asserts arcs at every state are sorted by ILabel.
	ILabelSorted Properties = 1 << iota
	// OLabelSorted asserts arcs at every state are sorted by OLabel.
	OLabelSorted
)

// Fst is the read-only contract consumed by matchers, the lazy
// substrate, and composition. Both VectorFst and lazy.Fst (the lazy
// wrapper around the compose, replace and factorweight engines)
// implement it.
type Fst[W any] interface {
	// Start returns the start state, or NoStateID if the FST is empty.
	Start() StateID
	// Final returns the final weight of s and whether s is final at all.
	Final(s StateID) (W, bool)
	// NumArcs returns the number of outgoing arcs at s.
	NumArcs(s StateID) int
	// Arcs returns the outgoing arcs of s, in storage order.
	Arcs(s StateID) []Arc[W]
	// Properties returns the bits this Fst asserts about its own arc
	// ordering.
	Properties() Properties
}

// MutableFst is the contract the core writes through (spec.md §4.B):
// eager closure, reweighting and reachability.RelabelFst modify their
// target through this interface. The auxiliary FST for label
// reachability and the closure skeleton are built as VectorFst values.
type MutableFst[W any] interface {
	Fst[W]

	SetStart(s StateID)
	NumStates() int
	AddState() StateID
	SetFinal(s StateID, w W)
	DeleteFinalWeight(s StateID)
	AddArc(s StateID, a Arc[W])
	NumInputEpsilons(s StateID) int
	NumOutputEpsilons(s StateID) int
	SetProperties(p Properties)
}
