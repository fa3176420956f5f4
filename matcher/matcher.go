package matcher

import (
	"math"
	"sort"

	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/semiring"
)

// MatchType says which side of an Fst's arcs a matcher matches labels
// against.
type MatchType uint8

const (
	// MatchUnknown is the zero value: no match type has been determined.
	MatchUnknown MatchType = iota
	// MatchInput matches against arc ILabel.
	MatchInput
	// MatchOutput matches against arc OLabel.
	MatchOutput
	// MatchBoth matches against either side (used by identity-like Fsts).
	MatchBoth
	// MatchNone never matches anything.
	MatchNone
)

func (t MatchType) String() string {
	switch t {
	case MatchInput:
		return "MatchInput"
	case MatchOutput:
		return "MatchOutput"
	case MatchBoth:
		return "MatchBoth"
	case MatchNone:
		return "MatchNone"
	default:
		return "MatchUnknown"
	}
}

// Flags is a bitset of capabilities/requirements a matcher advertises to
// the composition engine (spec.md §5 "Matcher flags()").
type Flags uint32

const (
	// RequirePriority marks a matcher that must always be consulted
	// regardless of the priority comparison with its partner (rustfst's
	// MATCHER_FLAGS REQUIRE_PRIORITY bit, supplemented per SPEC_FULL §5).
	RequirePriority Flags = 1 << iota
	// LookAheadWeight marks a look-ahead matcher that accumulates a
	// reach weight on LookAheadFst queries.
	LookAheadWeight
	// LookAheadPrefix marks a look-ahead matcher that saves a witnessed
	// single prefix arc for the push-labels filter.
	LookAheadPrefix
)

// MaxPriority is the matcher priority meaning "must be used" (spec.md
// §4.F: "USIZE_MAX means 'must be used'").
const MaxPriority = math.MaxInt

// Item is a single result of a matcher iteration: either a reference to
// a real arc, or a synthetic epsilon self-loop used by the composition
// engine to represent "this side held at ε" (spec.md §4.F).
type Item[W any] struct {
	Arc   fst.Arc[W]
	IsEps bool
}

// Matcher enumerates, at a given state, the arcs whose matched label
// equals a requested one (spec.md §4.F).
type Matcher[W semiring.Weight[W]] interface {
	// Iter returns the matches for label at state s. label may be
	// fst.NoLabel to request every arc ("match anything").
	Iter(s fst.StateID, label fst.Label) []Item[W]
	// FinalWeight returns s's final weight and whether s is final.
	FinalWeight(s fst.StateID) (W, bool)
	MatchType() MatchType
	Flags() Flags
	// Priority ranks this matcher against its partner at product state s;
	// the composition engine iterates the matcher with the smaller value.
	Priority(s fst.StateID) int
	Fst() fst.Fst[W]
}

// SortedMatcher matches against one side (input or output) of an Fst
// whose arcs are sorted on that side, via binary search (spec.md §4.F).
// Modeled on the teacher's CharClassSearcher: a precomputed, queryable
// structure over an Fst's own transition data rather than a copy of it.
type SortedMatcher[W semiring.Weight[W]] struct {
	f         fst.Fst[W]
	matchType MatchType
	sr        semiring.Semiring[W]
}

// NewSortedMatcher builds a matcher over f for matchType, which must be
// MatchInput or MatchOutput. f must assert the corresponding sortedness
// property (fst.ILabelSorted / fst.OLabelSorted).
func NewSortedMatcher[W semiring.Weight[W]](f fst.Fst[W], matchType MatchType, sr semiring.Semiring[W]) (*SortedMatcher[W], error) {
	var want fst.Properties
	switch matchType {
	case MatchInput:
		want = fst.ILabelSorted
	case MatchOutput:
		want = fst.OLabelSorted
	default:
		return nil, &Error{Kind: Unsorted, Message: "sorted matcher requires MatchInput or MatchOutput"}
	}
	if f.Properties()&want == 0 {
		return nil, &Error{Kind: Unsorted, Message: "backing fst does not assert the required sortedness property"}
	}
	return &SortedMatcher[W]{f: f, matchType: matchType, sr: sr}, nil
}

func (m *SortedMatcher[W]) MatchType() MatchType { return m.matchType }

func (m *SortedMatcher[W]) Flags() Flags { return 0 }

// Priority is the arc count at s: states with fewer arcs to scan are
// preferred as the iteration (match) side.
func (m *SortedMatcher[W]) Priority(s fst.StateID) int { return m.f.NumArcs(s) }

func (m *SortedMatcher[W]) Fst() fst.Fst[W] { return m.f }

func (m *SortedMatcher[W]) FinalWeight(s fst.StateID) (W, bool) { return m.f.Final(s) }

func (m *SortedMatcher[W]) label(a fst.Arc[W]) fst.Label {
	if m.matchType == MatchInput {
		return a.ILabel
	}
	return a.OLabel
}

// Iter returns every arc at s matching label. label == fst.NoLabel
// enumerates every arc at s, in order (spec.md §4.F "anything" mode).
func (m *SortedMatcher[W]) Iter(s fst.StateID, label fst.Label) []Item[W] {
	arcs := m.f.Arcs(s)

	if label == fst.NoLabel {
		items := make([]Item[W], len(arcs))
		for i, a := range arcs {
			items[i] = Item[W]{Arc: a}
		}
		return items
	}

	lo := sort.Search(len(arcs), func(i int) bool { return m.label(arcs[i]) >= label })
	var items []Item[W]
	for i := lo; i < len(arcs) && m.label(arcs[i]) == label; i++ {
		items = append(items, Item[W]{Arc: arcs[i]})
	}

	if label == fst.Eps {
		if w, ok := m.f.Final(s); ok && !w.IsZero() {
			items = append(items, Item[W]{IsEps: true})
		}
	}

	return items
}

var (
	_ Matcher[semiring.Tropical] = (*SortedMatcher[semiring.Tropical])(nil)
)
