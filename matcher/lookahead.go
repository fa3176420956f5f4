package matcher

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/reachability"
	"github.com/coregx/fstcore/semiring"
)

// LookAheadMatcher wraps a base Matcher with label-reachability data
// over the complementary label side, answering "can this product branch
// still reach a non-zero-weight path" before composition expands it
// (spec.md §4.G).
type LookAheadMatcher[W semiring.Weight[W]] struct {
	base  Matcher[W]
	lr    *reachability.LabelReachability[W]
	sr    semiring.Semiring[W]
	flags Flags

	// lastPartner memoizes the most recently initialized partner Fst by
	// pointer identity, so repeated InitLookAheadFst calls on the same
	// partner within one composition run skip re-validation (spec.md §5
	// "label reachability cache key reuse", grounded on rustfst's
	// label_lookahead_matcher.rs).
	lastPartner fst.Fst[W]

	// prefixArc holds the single witnessing arc from the most recent
	// LookAheadFst call, when reachability was witnessed by exactly one
	// non-final-ending arc and LookAheadPrefix is set.
	prefixArc fst.Arc[W]
	hasPrefix bool

	// reachWeight holds the ⊕-sum weight accumulated over the most
	// recent LookAheadFst call's reachable arc range, when
	// LookAheadWeight is set.
	reachWeight    W
	hasReachWeight bool

	// maxDepth bounds how many of matcherState's arcs LookAheadFst scans
	// per query (config.ComposeConfig.MaxLookAheadDepth). Zero means
	// unbounded.
	maxDepth int
}

// WithMaxLookAheadDepth sets the per-query arc-scan bound and returns m
// for chaining (config.ComposeConfig.MaxLookAheadDepth, spec.md §4.G).
// depth <= 0 means unbounded.
func (m *LookAheadMatcher[W]) WithMaxLookAheadDepth(depth int) *LookAheadMatcher[W] {
	if depth < 0 {
		depth = 0
	}
	m.maxDepth = depth
	return m
}

// NewLookAheadMatcher wraps base with reachability data lr and the given
// flag bits (LookAheadWeight and/or LookAheadPrefix).
func NewLookAheadMatcher[W semiring.Weight[W]](base Matcher[W], lr *reachability.LabelReachability[W], sr semiring.Semiring[W], flags Flags) *LookAheadMatcher[W] {
	return &LookAheadMatcher[W]{base: base, lr: lr, sr: sr, flags: flags | RequirePriority}
}

func (m *LookAheadMatcher[W]) Iter(s fst.StateID, label fst.Label) []Item[W] {
	return m.base.Iter(s, label)
}

func (m *LookAheadMatcher[W]) FinalWeight(s fst.StateID) (W, bool) { return m.base.FinalWeight(s) }

func (m *LookAheadMatcher[W]) MatchType() MatchType { return m.base.MatchType() }

func (m *LookAheadMatcher[W]) Flags() Flags { return m.flags }

func (m *LookAheadMatcher[W]) Priority(s fst.StateID) int { return m.base.Priority(s) }

func (m *LookAheadMatcher[W]) Fst() fst.Fst[W] { return m.base.Fst() }

// InitLookAheadFst records other as the current look-ahead partner,
// after verifying it is sorted on the complementary label side (spec.md
// §4.G). This matcher matches on base.MatchType()'s side, so the
// partner sits on the opposite side of the product and must be sorted
// on the other label: MatchOutput pairs with an ILabelSorted partner,
// MatchInput with an OLabelSorted one.
// Repeated calls with the same other (by interface identity) are no-ops,
// matching spec.md §4.G's pointer-equality cache-key short circuit.
func (m *LookAheadMatcher[W]) InitLookAheadFst(other fst.Fst[W]) error {
	if m.lastPartner == other {
		return nil
	}

	var want fst.Properties
	switch m.base.MatchType() {
	case MatchOutput:
		want = fst.ILabelSorted
	case MatchInput:
		want = fst.OLabelSorted
	}
	if want != 0 && other.Properties()&want == 0 {
		return &Error{Kind: Unsorted, Message: "look-ahead partner fst does not assert the required complementary sortedness property"}
	}

	m.lastPartner = other
	m.hasPrefix = false
	return nil
}

// LookAheadLabel reports whether label can still be matched from
// matcherState on the side this data was built over (spec.md §4.G).
func (m *LookAheadMatcher[W]) LookAheadLabel(matcherState fst.StateID, label fst.Label) bool {
	if label == fst.Eps {
		return true
	}
	return m.lr.ReachLabel(matcherState, label)
}

// LookAheadFst reports whether some path from (matcherState, otherState)
// in the product has a non-zero weight, per the reachability data bound
// to this matcher's side. When LookAheadPrefix is set and the witness is
// exactly one non-final-ending arc at matcherState, that arc is saved
// and retrievable via Prefix for the push-labels filter.
func (m *LookAheadMatcher[W]) LookAheadFst(matcherState fst.StateID, other fst.Fst[W], otherState fst.StateID) bool {
	m.hasPrefix = false
	m.hasReachWeight = false

	if m.lr.ReachFinal(matcherState) {
		if fw, ok := other.Final(otherState); ok && !fw.IsZero() {
			return true
		}
	}

	arcs := m.base.Fst().Arcs(matcherState)
	scanLimit := len(arcs)
	if m.maxDepth > 0 && m.maxDepth < scanLimit {
		scanLimit = m.maxDepth
	}
	computeWeight := m.flags&LookAheadWeight != 0
	begin, end, weight, ok := reachability.ReachRange[W](m.lr, matcherState, arcs, 0, scanLimit, m.sr, computeWeight)
	if !ok {
		return false
	}
	if computeWeight {
		m.reachWeight, m.hasReachWeight = weight, true
	}

	if m.flags&LookAheadPrefix != 0 && end-begin == 1 {
		a := arcs[begin]
		if fw, isFinal := m.base.Fst().Final(a.NextState); !isFinal || fw.IsZero() {
			m.prefixArc = a
			m.hasPrefix = true
		}
	}

	return true
}

// Prefix returns the single prefix arc witnessed by the most recent
// LookAheadFst call, if any (used by the push-labels composition
// filter, spec.md §4.K).
func (m *LookAheadMatcher[W]) Prefix() (fst.Arc[W], bool) {
	return m.prefixArc, m.hasPrefix
}

// ReachWeight returns the ⊕-sum weight accumulated over the most recent
// LookAheadFst call's reachable arc range, if LookAheadWeight was set
// (used by the push-weights composition filter, spec.md §4.K).
func (m *LookAheadMatcher[W]) ReachWeight() (W, bool) {
	return m.reachWeight, m.hasReachWeight
}

var _ Matcher[semiring.Tropical] = (*LookAheadMatcher[semiring.Tropical])(nil)
