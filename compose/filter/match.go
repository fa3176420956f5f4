package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// MatchFilter picks, per product state, whichever of SequenceFilter's or
// AltSequenceFilter's ordering rule to apply based on the matchers'
// reported priorities (spec.md §4.K "commutative joint-ε filtering
// using matcher priorities"): the side with the cheaper (smaller
// priority) matcher goes first, since that is the side the composition
// engine will also prefer as its match_side (§4.L step 2).
type MatchFilter[W semiring.Weight[W]] struct {
	m1, m2 matcher.Matcher[W]
	seq    *SequenceFilter[W]
	altSeq *AltSequenceFilter[W]

	// side1First is recomputed by SetState: true when matcher1's
	// priority at s1 is no greater than matcher2's at s2.
	side1First bool
}

// NewMatchFilter builds a MatchFilter over the given matchers.
func NewMatchFilter[W semiring.Weight[W]](m1, m2 matcher.Matcher[W]) *MatchFilter[W] {
	return &MatchFilter[W]{
		m1:     m1,
		m2:     m2,
		seq:    NewSequenceFilter[W](m1, m2),
		altSeq: NewAltSequenceFilter[W](m1, m2),
	}
}

func (f *MatchFilter[W]) Start() FilterState { return 0 }

func (f *MatchFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.side1First = f.m1.Priority(s1) <= f.m2.Priority(s2)
	f.seq.SetState(s1, s2, fs)
	f.altSeq.SetState(s1, s2, fs)
}

func (f *MatchFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	if f.side1First {
		return f.seq.FilterArc(a1, a2)
	}
	return f.altSeq.FilterArc(a1, a2)
}

func (f *MatchFilter[W]) FilterFinal(w1, w2 *W) {}

func (f *MatchFilter[W]) Matcher1() matcher.Matcher[W] { return f.m1 }
func (f *MatchFilter[W]) Matcher2() matcher.Matcher[W] { return f.m2 }

var _ Filter[semiring.Tropical] = (*MatchFilter[semiring.Tropical])(nil)
