package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// weightReacher is implemented by look-ahead matchers configured with
// LookAheadWeight; it exposes the accumulated reach weight from the
// most recent LookAheadFst call so a PushWeightsFilter can fold it into
// the emitted arc's weight.
type weightReacher[W any] interface {
	ReachWeight() (W, bool)
}

// PushWeightsFilter wraps an inner filter: once a pair is accepted, it
// multiplies in the look-ahead reach weight (when available) on the
// emitted arc, so weight mass is pushed toward the start of the product
// rather than left on a later arc (spec.md §4.K).
type PushWeightsFilter[W semiring.Weight[W]] struct {
	inner Filter[W]
	la1   lookAheadCapable[W]
	la2   lookAheadCapable[W]
}

// NewPushWeightsFilter wraps inner, discovering look-ahead-capable
// matchers the same way LookAheadFilter does.
func NewPushWeightsFilter[W semiring.Weight[W]](inner Filter[W]) *PushWeightsFilter[W] {
	f := &PushWeightsFilter[W]{inner: inner}
	if la, ok := inner.Matcher1().(lookAheadCapable[W]); ok {
		f.la1 = la
	}
	if la, ok := inner.Matcher2().(lookAheadCapable[W]); ok {
		f.la2 = la
	}
	return f
}

func (f *PushWeightsFilter[W]) Start() FilterState { return f.inner.Start() }

func (f *PushWeightsFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.inner.SetState(s1, s2, fs)
}

func (f *PushWeightsFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	next := f.inner.FilterArc(a1, a2)
	if next == NoStateFS {
		return NoStateFS
	}

	if f.la1 != nil {
		if wr, ok := any(f.la1).(weightReacher[W]); ok {
			if w, has := wr.ReachWeight(); has {
				a1.Weight = a1.Weight.Times(w)
			}
		}
	}
	if f.la2 != nil {
		if wr, ok := any(f.la2).(weightReacher[W]); ok {
			if w, has := wr.ReachWeight(); has {
				a2.Weight = a2.Weight.Times(w)
			}
		}
	}

	return next
}

func (f *PushWeightsFilter[W]) FilterFinal(w1, w2 *W) { f.inner.FilterFinal(w1, w2) }

func (f *PushWeightsFilter[W]) Matcher1() matcher.Matcher[W] { return f.inner.Matcher1() }
func (f *PushWeightsFilter[W]) Matcher2() matcher.Matcher[W] { return f.inner.Matcher2() }

var _ Filter[semiring.Tropical] = (*PushWeightsFilter[semiring.Tropical])(nil)
