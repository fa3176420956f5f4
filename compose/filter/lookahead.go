package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// lookAheadCapable narrows matcher.Matcher to the subset implemented by
// matcher.LookAheadMatcher, letting this package consult look-ahead data
// without importing a concrete matcher type into the Filter interface
// itself.
type lookAheadCapable[W semiring.Weight[W]] interface {
	matcher.Matcher[W]
	InitLookAheadFst(other fst.Fst[W]) error
	LookAheadFst(matcherState fst.StateID, other fst.Fst[W], otherState fst.StateID) bool
}

// LookAheadFilter wraps an inner Filter and, after the inner filter
// accepts a pair, consults each side's look-ahead matcher (when present)
// to drop pairs with no future non-zero-weight continuation (spec.md
// §4.K).
type LookAheadFilter[W semiring.Weight[W]] struct {
	inner Filter[W]
	la1   lookAheadCapable[W]
	la2   lookAheadCapable[W]
}

// NewLookAheadFilter wraps inner. If inner.Matcher1()/Matcher2() are
// look-ahead capable, their partner Fsts are initialized eagerly.
func NewLookAheadFilter[W semiring.Weight[W]](inner Filter[W]) *LookAheadFilter[W] {
	f := &LookAheadFilter[W]{inner: inner}
	if la, ok := inner.Matcher1().(lookAheadCapable[W]); ok {
		f.la1 = la
		_ = la.InitLookAheadFst(inner.Matcher2().Fst())
	}
	if la, ok := inner.Matcher2().(lookAheadCapable[W]); ok {
		f.la2 = la
		_ = la.InitLookAheadFst(inner.Matcher1().Fst())
	}
	return f
}

func (f *LookAheadFilter[W]) Start() FilterState { return f.inner.Start() }

func (f *LookAheadFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.inner.SetState(s1, s2, fs)
}

func (f *LookAheadFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	next := f.inner.FilterArc(a1, a2)
	if next == NoStateFS {
		return NoStateFS
	}
	if f.la1 != nil {
		partnerFst := f.inner.Matcher2().Fst()
		if !f.la1.LookAheadFst(a1.NextState, partnerFst, a2.NextState) {
			return NoStateFS
		}
	}
	if f.la2 != nil {
		partnerFst := f.inner.Matcher1().Fst()
		if !f.la2.LookAheadFst(a2.NextState, partnerFst, a1.NextState) {
			return NoStateFS
		}
	}
	return next
}

func (f *LookAheadFilter[W]) FilterFinal(w1, w2 *W) { f.inner.FilterFinal(w1, w2) }

func (f *LookAheadFilter[W]) Matcher1() matcher.Matcher[W] { return f.inner.Matcher1() }
func (f *LookAheadFilter[W]) Matcher2() matcher.Matcher[W] { return f.inner.Matcher2() }

var _ Filter[semiring.Tropical] = (*LookAheadFilter[semiring.Tropical])(nil)
