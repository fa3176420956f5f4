// Package filter implements the composition filters of spec.md §4.K: the
// state machines that decide, for a joint epsilon move between two
// composition operands, which of the two sides gets to "go first" so
// that a given (ε, ε) path through the product is counted exactly once.
package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// FilterState is a small integer tagging the filter's internal progress
// at a product state. NoStateFS is the blocking sentinel: filter_arc
// returns it to reject a candidate pair outright.
type FilterState int

// NoStateFS is the blocking marker filter_arc returns to reject a pair.
const NoStateFS FilterState = -1

// Filter is the contract every composition filter satisfies (spec.md
// §4.K): decide per-product-state setup, per-arc-pair acceptance, and
// final-weight combination.
type Filter[W semiring.Weight[W]] interface {
	// Start returns the filter's initial state.
	Start() FilterState
	// SetState is called before any FilterArc query at product state
	// (s1, s2, fs).
	SetState(s1, s2 fst.StateID, fs FilterState)
	// FilterArc decides whether the pair (a1, a2) may be joined; it may
	// mutate a1/a2 (e.g. to push a label or weight) and returns the
	// successor filter state, or NoStateFS to block the pair.
	FilterArc(a1, a2 *fst.Arc[W]) FilterState
	// FilterFinal may mutate w1/w2 (e.g. to account for a pending
	// push-weights residual) when both operand states are final.
	FilterFinal(w1, w2 *W)
	Matcher1() matcher.Matcher[W]
	Matcher2() matcher.Matcher[W]
}
