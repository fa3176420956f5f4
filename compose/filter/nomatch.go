package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// NoMatchFilter is the simplest filter: it rejects the joint epsilon
// move outright (olabel(a1) == ilabel(a2) == Eps) and accepts every
// other pair unconditionally. Supplemented from rustfst's
// no_match_compose_filter.rs (spec.md §5): useful as the innermost
// layer when the caller already knows the operands have no competing
// epsilon paths to disambiguate.
type NoMatchFilter[W semiring.Weight[W]] struct {
	m1, m2 matcher.Matcher[W]
}

// NewNoMatchFilter builds a NoMatchFilter over the given matchers.
func NewNoMatchFilter[W semiring.Weight[W]](m1, m2 matcher.Matcher[W]) *NoMatchFilter[W] {
	return &NoMatchFilter[W]{m1: m1, m2: m2}
}

func (f *NoMatchFilter[W]) Start() FilterState { return 0 }

func (f *NoMatchFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {}

func (f *NoMatchFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	if a1.OLabel == fst.Eps && a2.ILabel == fst.Eps {
		return NoStateFS
	}
	return 0
}

func (f *NoMatchFilter[W]) FilterFinal(w1, w2 *W) {}

func (f *NoMatchFilter[W]) Matcher1() matcher.Matcher[W] { return f.m1 }
func (f *NoMatchFilter[W]) Matcher2() matcher.Matcher[W] { return f.m2 }

var _ Filter[semiring.Tropical] = (*NoMatchFilter[semiring.Tropical])(nil)
