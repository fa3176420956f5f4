package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

func sortedMatcherFor(t *testing.T, f *fst.VectorFst[semiring.Tropical], mt matcher.MatchType) matcher.Matcher[semiring.Tropical] {
	t.Helper()
	m, err := matcher.NewSortedMatcher[semiring.Tropical](f, mt, semiring.TropicalSemiring{})
	require.NoError(t, err)
	return m
}

func oneStateFst(t *testing.T) *fst.VectorFst[semiring.Tropical] {
	t.Helper()
	f := fst.NewVectorFst[semiring.Tropical]()
	s := f.AddState()
	f.SetStart(s)
	f.SetProperties(fst.ILabelSorted | fst.OLabelSorted)
	return f
}

func TestNoMatchFilterBlocksJointEps(t *testing.T) {
	f1, f2 := oneStateFst(t), oneStateFst(t)
	nf := NewNoMatchFilter[semiring.Tropical](sortedMatcherFor(t, f1, matcher.MatchOutput), sortedMatcherFor(t, f2, matcher.MatchInput))

	a1 := fst.Arc[semiring.Tropical]{OLabel: fst.Eps}
	a2 := fst.Arc[semiring.Tropical]{ILabel: fst.Eps}
	assert.Equal(t, NoStateFS, nf.FilterArc(&a1, &a2))

	a1.OLabel, a2.ILabel = 5, 5
	assert.Equal(t, FilterState(0), nf.FilterArc(&a1, &a2))
}

func TestSequenceFilterEpsSelfOnSide1(t *testing.T) {
	f1, f2 := oneStateFst(t), oneStateFst(t)
	sf := NewSequenceFilter[semiring.Tropical](sortedMatcherFor(t, f1, matcher.MatchOutput), sortedMatcherFor(t, f2, matcher.MatchInput))
	sf.SetState(fst.StateID(0), fst.StateID(0), 0)

	// s1 has no arcs at all (noeps1 true, alleps1 vacuously true too —
	// alleps1 is checked first per the transition table).
	a1 := fst.Arc[semiring.Tropical]{OLabel: fst.NoLabel}
	a2 := fst.Arc[semiring.Tropical]{ILabel: 3}
	assert.Equal(t, NoStateFS, sf.FilterArc(&a1, &a2))
}

func TestSequenceFilterRealMatchBlocksDoubleEps(t *testing.T) {
	f1, f2 := oneStateFst(t), oneStateFst(t)
	sf := NewSequenceFilter[semiring.Tropical](sortedMatcherFor(t, f1, matcher.MatchOutput), sortedMatcherFor(t, f2, matcher.MatchInput))
	sf.SetState(fst.StateID(0), fst.StateID(0), 0)

	a1 := fst.Arc[semiring.Tropical]{OLabel: fst.Eps}
	a2 := fst.Arc[semiring.Tropical]{ILabel: fst.Eps}
	assert.Equal(t, NoStateFS, sf.FilterArc(&a1, &a2))
}

func TestSequenceFilterAcceptsRealLabelMatch(t *testing.T) {
	f1, f2 := oneStateFst(t), oneStateFst(t)
	sf := NewSequenceFilter[semiring.Tropical](sortedMatcherFor(t, f1, matcher.MatchOutput), sortedMatcherFor(t, f2, matcher.MatchInput))
	sf.SetState(fst.StateID(0), fst.StateID(0), 0)

	a1 := fst.Arc[semiring.Tropical]{OLabel: 7}
	a2 := fst.Arc[semiring.Tropical]{ILabel: 7}
	assert.Equal(t, FilterState(0), sf.FilterArc(&a1, &a2))
}

func TestMatchFilterPicksCheaperSideFirst(t *testing.T) {
	f1 := oneStateFst(t)
	f1.AddArc(fst.StateID(0), fst.Arc[semiring.Tropical]{ILabel: 1, OLabel: 1, Weight: semiring.TropicalSemiring{}.One(), NextState: 0})
	f2 := oneStateFst(t)

	mf := NewMatchFilter[semiring.Tropical](sortedMatcherFor(t, f1, matcher.MatchOutput), sortedMatcherFor(t, f2, matcher.MatchInput))
	mf.SetState(fst.StateID(0), fst.StateID(0), 0)
	// f1 has one arc (priority 1), f2 has zero (priority 0): f2 is
	// cheaper, so side 1 does not go first.
	assert.False(t, mf.side1First)
}
