package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// PushLabelsFilter wraps an inner filter (typically a LookAheadFilter).
// After the inner filter accepts a pair, it takes the prefix arc that
// each look-ahead matcher witnessed in its most recent LookAheadFst call
// and writes that arc's label into the pair's matched labels (a1.OLabel,
// a2.ILabel). The composition engine builds the emitted arc from
// a1.ILabel and a2.OLabel, so these writes do not change the labels of
// the emitted arc (spec.md §4.K).
type PushLabelsFilter[W semiring.Weight[W]] struct {
	inner Filter[W]
	la1   lookAheadCapable[W]
	la2   lookAheadCapable[W]
}

// prefixer is implemented by look-ahead matchers configured with
// LookAheadPrefix; it surfaces the witnessed prefix arc from the most
// recent LookAheadFst call.
type prefixer[W any] interface {
	Prefix() (fst.Arc[W], bool)
}

// NewPushLabelsFilter wraps inner, discovering look-ahead-capable
// matchers the same way LookAheadFilter does.
func NewPushLabelsFilter[W semiring.Weight[W]](inner Filter[W]) *PushLabelsFilter[W] {
	f := &PushLabelsFilter[W]{inner: inner}
	if la, ok := inner.Matcher1().(lookAheadCapable[W]); ok {
		f.la1 = la
	}
	if la, ok := inner.Matcher2().(lookAheadCapable[W]); ok {
		f.la2 = la
	}
	return f
}

func (f *PushLabelsFilter[W]) Start() FilterState { return f.inner.Start() }

func (f *PushLabelsFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.inner.SetState(s1, s2, fs)
}

func (f *PushLabelsFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	next := f.inner.FilterArc(a1, a2)
	if next == NoStateFS {
		return NoStateFS
	}

	if f.la1 != nil {
		if px, ok := any(f.la1).(prefixer[W]); ok {
			if arc, has := px.Prefix(); has {
				a1.OLabel = arc.ILabel
			}
		}
	}
	if f.la2 != nil {
		if px, ok := any(f.la2).(prefixer[W]); ok {
			if arc, has := px.Prefix(); has {
				a2.ILabel = arc.OLabel
			}
		}
	}

	return next
}

func (f *PushLabelsFilter[W]) FilterFinal(w1, w2 *W) { f.inner.FilterFinal(w1, w2) }

func (f *PushLabelsFilter[W]) Matcher1() matcher.Matcher[W] { return f.inner.Matcher1() }
func (f *PushLabelsFilter[W]) Matcher2() matcher.Matcher[W] { return f.inner.Matcher2() }

var _ Filter[semiring.Tropical] = (*PushLabelsFilter[semiring.Tropical])(nil)
