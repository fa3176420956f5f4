package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// SequenceFilter enforces epsilon moves on side 1 before epsilon moves
// on side 2, so a given (ε, ε) path through the product is counted
// exactly once (spec.md §4.K). Its filter state is 0, 1, or the
// blocking NoStateFS.
type SequenceFilter[W semiring.Weight[W]] struct {
	m1, m2 matcher.Matcher[W]

	// alleps1/noeps1 are recomputed by SetState for the current s1:
	// alleps1 is true when s1 has no non-epsilon-output arcs; noeps1 is
	// true when s1 has no epsilon-output arcs at all.
	alleps1, noeps1 bool
	// curFS is the filter state SetState was last called with, needed
	// by the v = NO_LABEL transition rule (spec.md §4.K).
	curFS FilterState
}

// NewSequenceFilter builds a SequenceFilter over the given matchers.
func NewSequenceFilter[W semiring.Weight[W]](m1, m2 matcher.Matcher[W]) *SequenceFilter[W] {
	return &SequenceFilter[W]{m1: m1, m2: m2}
}

func (f *SequenceFilter[W]) Start() FilterState { return 0 }

func (f *SequenceFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.curFS = fs
	anyEps, anyNonEps := false, false
	for _, a := range f.m1.Fst().Arcs(s1) {
		if a.OLabel == fst.Eps {
			anyEps = true
		} else {
			anyNonEps = true
		}
	}
	f.alleps1 = !anyNonEps
	f.noeps1 = !anyEps
}

func (f *SequenceFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	u, v := a1.OLabel, a2.ILabel

	if u == fst.NoLabel {
		switch {
		case f.alleps1:
			return NoStateFS
		case f.noeps1:
			return 0
		default:
			return 1
		}
	}

	if v == fst.NoLabel {
		if f.curFS != 0 {
			return NoStateFS
		}
		return 0
	}

	if u == fst.Eps {
		return NoStateFS
	}
	return 0
}

func (f *SequenceFilter[W]) FilterFinal(w1, w2 *W) {}

func (f *SequenceFilter[W]) Matcher1() matcher.Matcher[W] { return f.m1 }
func (f *SequenceFilter[W]) Matcher2() matcher.Matcher[W] { return f.m2 }

var _ Filter[semiring.Tropical] = (*SequenceFilter[semiring.Tropical])(nil)
