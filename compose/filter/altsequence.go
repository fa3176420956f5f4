package filter

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// AltSequenceFilter is SequenceFilter's mirror image: it enforces
// epsilon moves on side 2 before epsilon moves on side 1 (spec.md
// §4.K), for operand pairs where side 2 is cheaper to prioritize.
type AltSequenceFilter[W semiring.Weight[W]] struct {
	m1, m2 matcher.Matcher[W]

	// alleps2/noeps2 mirror SequenceFilter's alleps1/noeps1, computed
	// over s2's input-side arcs instead of s1's output-side arcs.
	alleps2, noeps2 bool
	curFS           FilterState
}

// NewAltSequenceFilter builds an AltSequenceFilter over the given matchers.
func NewAltSequenceFilter[W semiring.Weight[W]](m1, m2 matcher.Matcher[W]) *AltSequenceFilter[W] {
	return &AltSequenceFilter[W]{m1: m1, m2: m2}
}

func (f *AltSequenceFilter[W]) Start() FilterState { return 0 }

func (f *AltSequenceFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	f.curFS = fs
	anyEps, anyNonEps := false, false
	for _, a := range f.m2.Fst().Arcs(s2) {
		if a.ILabel == fst.Eps {
			anyEps = true
		} else {
			anyNonEps = true
		}
	}
	f.alleps2 = !anyNonEps
	f.noeps2 = !anyEps
}

func (f *AltSequenceFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	u, v := a1.OLabel, a2.ILabel

	if v == fst.NoLabel {
		switch {
		case f.alleps2:
			return NoStateFS
		case f.noeps2:
			return 0
		default:
			return 1
		}
	}

	if u == fst.NoLabel {
		if f.curFS != 0 {
			return NoStateFS
		}
		return 0
	}

	if v == fst.Eps {
		return NoStateFS
	}
	return 0
}

func (f *AltSequenceFilter[W]) FilterFinal(w1, w2 *W) {}

func (f *AltSequenceFilter[W]) Matcher1() matcher.Matcher[W] { return f.m1 }
func (f *AltSequenceFilter[W]) Matcher2() matcher.Matcher[W] { return f.m2 }

var _ Filter[semiring.Tropical] = (*AltSequenceFilter[semiring.Tropical])(nil)
