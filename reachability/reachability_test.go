package reachability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/semiring"
)

// buildChain builds start --l0--> s1 --l1--> s2 --l2--> s3(final), using
// distinct output labels, for look-ahead pruning style tests (spec.md §8
// scenario 3).
func buildChain(labels []fst.Label) *fst.VectorFst[semiring.Tropical] {
	f := fst.NewVectorFst[semiring.Tropical]()
	s0 := f.AddState()
	f.SetStart(s0)
	prev := s0
	one := semiring.TropicalSemiring{}.One()
	for _, l := range labels {
		next := f.AddState()
		f.AddArc(prev, fst.Arc[semiring.Tropical]{ILabel: l, OLabel: l, Weight: one, NextState: next})
		prev = next
	}
	f.SetFinal(prev, one)
	return f
}

func TestLabelReachabilityDirectArc(t *testing.T) {
	f := buildChain([]fst.Label{9, 8, 7})
	lr, err := NewLabelReachability[semiring.Tropical](f, false)
	require.NoError(t, err)

	// Only the label on state 0's own arc can be read next; 8 and 7 lie
	// behind it.
	assert.True(t, lr.ReachLabel(fst.StateID(0), 9))
	assert.False(t, lr.ReachLabel(fst.StateID(0), 8))
	assert.False(t, lr.ReachLabel(fst.StateID(0), 7))
	assert.False(t, lr.ReachLabel(fst.StateID(0), 42))
}

func TestLabelReachabilityNarrowsDeeperInChain(t *testing.T) {
	f := buildChain([]fst.Label{9, 8, 7})
	lr, err := NewLabelReachability[semiring.Tropical](f, false)
	require.NoError(t, err)

	// From state 1 (after consuming label 9), only 8 is the next label.
	assert.False(t, lr.ReachLabel(fst.StateID(1), 9))
	assert.True(t, lr.ReachLabel(fst.StateID(1), 8))
	assert.False(t, lr.ReachLabel(fst.StateID(1), 7))
}

func TestLabelReachabilityFinal(t *testing.T) {
	f := buildChain([]fst.Label{9})
	lr, err := NewLabelReachability[semiring.Tropical](f, false)
	require.NoError(t, err)
	assert.True(t, lr.ReachFinal(fst.StateID(1)))
	assert.False(t, lr.ReachFinal(fst.StateID(0)))
}

func TestRelabelMonotoneNeverReturnsEps(t *testing.T) {
	f := buildChain([]fst.Label{9, 8})
	lr, err := NewLabelReachability[semiring.Tropical](f, false)
	require.NoError(t, err)

	seen := map[uint64]bool{}
	for _, l := range []fst.Label{100, 200, 300} {
		idx := lr.Relabel(l)
		assert.NotEqual(t, uint64(0), idx, "relabel must never return EPS for a new label")
		assert.False(t, seen[idx], "relabel must be injective")
		seen[idx] = true
	}
	assert.Equal(t, uint64(0), lr.Relabel(fst.Eps))
}

func TestReachRangeFiltersAndSumsWeight(t *testing.T) {
	f := buildChain([]fst.Label{9, 8, 7})
	lr, err := NewLabelReachability[semiring.Tropical](f, false)
	require.NoError(t, err)

	vf := fst.NewVectorFst[semiring.Tropical]()
	s0 := vf.AddState()
	s1 := vf.AddState()
	vf.SetStart(s0)
	one := semiring.TropicalSemiring{}.One()
	vf.AddArc(s0, fst.Arc[semiring.Tropical]{ILabel: 7, OLabel: 7, Weight: semiring.Tropical(1), NextState: s1})
	// lr was built over output labels, so the output side is relabeled.
	RelabelFst[semiring.Tropical](lr, vf, false)

	// State 2 of the chain is the one whose next label is 7.
	arcs := vf.Arcs(s0)
	b, e, w, ok := ReachRange[semiring.Tropical](lr, fst.StateID(2), arcs, 0, len(arcs), semiring.TropicalSemiring{}, true)
	require.True(t, ok)
	assert.Equal(t, 0, b)
	assert.Equal(t, 1, e)
	assert.Equal(t, semiring.Tropical(1), w)
}

func TestLabelReachabilityCountableRequired(t *testing.T) {
	_, err := NewLabelReachability[semiring.Tropical](lazyStub{}, false)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, NotExpanded, rerr.Kind)
}

// lazyStub implements fst.Fst without NumStates, simulating an
// unexpanded lazy FST passed where an expanded one is required.
type lazyStub struct{}

func (lazyStub) Start() fst.StateID                          { return fst.NoStateID }
func (lazyStub) Final(fst.StateID) (semiring.Tropical, bool)  { return semiring.Tropical(0), false }
func (lazyStub) NumArcs(fst.StateID) int                      { return 0 }
func (lazyStub) Arcs(fst.StateID) []fst.Arc[semiring.Tropical] { return nil }
func (lazyStub) Properties() fst.Properties                   { return 0 }
