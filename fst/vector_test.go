package fst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/semiring"
)

func buildSingleArcFst(t *testing.T, ilabel, olabel Label, weight semiring.Tropical) *VectorFst[semiring.Tropical] {
	t.Helper()
	f := NewVectorFst[semiring.Tropical]()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddArc(s0, Arc[semiring.Tropical]{ILabel: ilabel, OLabel: olabel, Weight: weight, NextState: s1})
	f.SetFinal(s1, semiring.TropicalSemiring{}.One())
	return f
}

func TestVectorFstBasics(t *testing.T) {
	f := buildSingleArcFst(t, 1, 2, semiring.Tropical(0.3))
	require.Equal(t, StateID(0), f.Start())
	require.Equal(t, 2, f.NumStates())

	arcs := f.Arcs(f.Start())
	require.Len(t, arcs, 1)
	assert.Equal(t, Label(1), arcs[0].ILabel)
	assert.Equal(t, Label(2), arcs[0].OLabel)
	assert.Equal(t, semiring.Tropical(0.3), arcs[0].Weight)

	w, ok := f.Final(arcs[0].NextState)
	require.True(t, ok)
	assert.True(t, w.IsOne())
}

func TestVectorFstDeleteFinalWeight(t *testing.T) {
	f := buildSingleArcFst(t, 1, 2, semiring.Tropical(0.3))
	f.DeleteFinalWeight(StateID(1))
	_, ok := f.Final(StateID(1))
	assert.False(t, ok)
}

func TestVectorFstEpsilonCounts(t *testing.T) {
	f := NewVectorFst[semiring.Tropical]()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddArc(s0, Arc[semiring.Tropical]{ILabel: Eps, OLabel: 5, Weight: semiring.Tropical(0), NextState: s1})
	f.AddArc(s0, Arc[semiring.Tropical]{ILabel: 5, OLabel: Eps, Weight: semiring.Tropical(0), NextState: s1})

	assert.Equal(t, 1, f.NumInputEpsilons(s0))
	assert.Equal(t, 1, f.NumOutputEpsilons(s0))
}

func TestDisplayFormat(t *testing.T) {
	f := buildSingleArcFst(t, 1, 2, semiring.Tropical(0.3))
	var sb strings.Builder
	require.NoError(t, Display[semiring.Tropical](&sb, f, false))
	out := sb.String()
	assert.Contains(t, out, "0\t1\t1\t2\t")
	assert.Contains(t, out, "1\n")
}
