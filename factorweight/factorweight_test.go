package factorweight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/lazy"
	"github.com/coregx/fstcore/semiring"
)

// unitStepIterator factors a tropical weight into a chain of weight-1
// steps, e.g. 3.0 -> (1, 2.0) -> (1, 1.0) -> (1, 0.0); it is done once
// the residual reaches zero (tropical's multiplicative identity).
type unitStepIterator struct {
	remaining semiring.Tropical
}

func newUnitStepIterator(w semiring.Tropical) Iterator[semiring.Tropical] {
	return &unitStepIterator{remaining: w}
}

func (it *unitStepIterator) Done() bool { return it.remaining <= 0 }

func (it *unitStepIterator) Next() (Factor[semiring.Tropical], bool) {
	if it.remaining <= 0 {
		return Factor[semiring.Tropical]{}, false
	}
	step := semiring.Tropical(1)
	if it.remaining < step {
		step = it.remaining
	}
	it.remaining -= step
	return Factor[semiring.Tropical]{Front: step, Residual: it.remaining}, true
}

func buildCostThreeChain() *fst.VectorFst[semiring.Tropical] {
	f := fst.NewVectorFst[semiring.Tropical]()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddArc(s0, fst.Arc[semiring.Tropical]{ILabel: 'a', OLabel: 'a', Weight: 3, NextState: s1})
	f.SetFinal(s1, semiring.TropicalSemiring{}.One())
	return f
}

func TestFactorArcWeightsSplitsIntoUnitSteps(t *testing.T) {
	f := buildCostThreeChain()
	cfg := Config{Mode: FactorArcWeights, Delta: 1e-9}
	eng := New[semiring.Tropical](f, semiring.TropicalSemiring{}, cfg, newUnitStepIterator)
	out := lazy.New[semiring.Tropical](eng, 0)

	// The iterator fully factors the arc's weight-3 in one Expand call,
	// fanning out three sibling arcs (each front=1) from the start
	// state, one per residual (2, 1, 0) — matching the ported
	// algorithm's single-pass "for (front, residual) in factor_it" loop.
	arcs := out.Arcs(out.Start())
	require.Len(t, arcs, 3)
	for _, a := range arcs {
		assert.Equal(t, semiring.Tropical(1), a.Weight)
	}

	// The sibling keyed by residual 0 reached the underlying final
	// state with no weight left to discharge, so it is final once the
	// operand's own final weight (one) is folded in.
	lastResidualState := arcs[2].NextState
	w, isFinal := out.Final(lastResidualState)
	require.True(t, isFinal)
	assert.Equal(t, semiring.TropicalSemiring{}.One(), w)
	require.NoError(t, out.Err())
}

func TestFactorFinalWeightsSplitsIntoUnitSteps(t *testing.T) {
	f := fst.NewVectorFst[semiring.Tropical]()
	s0 := f.AddState()
	f.SetStart(s0)
	f.SetFinal(s0, 2)

	cfg := Config{Mode: FactorFinalWeights, Delta: 1e-9, FinalILabel: 500, FinalOLabel: 500}
	eng := New[semiring.Tropical](f, semiring.TropicalSemiring{}, cfg, newUnitStepIterator)
	out := lazy.New[semiring.Tropical](eng, 0)

	_, isFinalDirectly := out.Final(out.Start())
	assert.False(t, isFinalDirectly, "final weight 2 is not yet fully factored")

	arcs := out.Arcs(out.Start())
	require.Len(t, arcs, 2, "cost 2 factors into two unit-weight final arcs")
	for _, a := range arcs {
		assert.Equal(t, fst.Label(500), a.ILabel)
		assert.Equal(t, semiring.Tropical(1), a.Weight)
	}

	_, isFinal := out.Final(arcs[1].NextState)
	assert.True(t, isFinal)
}

func TestFactorWeightDisabledModePassesThroughUnfactored(t *testing.T) {
	f := buildCostThreeChain()
	cfg := Config{Mode: 0, Delta: 1e-9}
	eng := New[semiring.Tropical](f, semiring.TropicalSemiring{}, cfg, newUnitStepIterator)
	out := lazy.New[semiring.Tropical](eng, 0)

	arcs := out.Arcs(out.Start())
	require.Len(t, arcs, 1)
	assert.Equal(t, semiring.Tropical(3), arcs[0].Weight)
}
