package semiring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTropicalPlusIsMin(t *testing.T) {
	assert.Equal(t, Tropical(1.5), Tropical(1.5).Plus(Tropical(2.5)))
	assert.Equal(t, Tropical(1.5), Tropical(2.5).Plus(Tropical(1.5)))
}

func TestTropicalTimesIsAdd(t *testing.T) {
	assert.Equal(t, Tropical(4), Tropical(1.5).Times(Tropical(2.5)))
}

func TestTropicalIdentities(t *testing.T) {
	sr := TropicalSemiring{}
	assert.True(t, sr.Zero().IsZero())
	assert.True(t, sr.One().IsOne())
	w := Tropical(3.0)
	assert.True(t, w.Plus(sr.Zero()).Equal(w))
	assert.True(t, w.Times(sr.One()).Equal(w))
}

func TestTropicalDivide(t *testing.T) {
	got, err := Tropical(5).Divide(Tropical(2), DivideLeft)
	require.NoError(t, err)
	assert.Equal(t, Tropical(3), got)
}

func TestTropicalQuantize(t *testing.T) {
	assert.Equal(t, Tropical(1.0), Tropical(1.04).Quantize(0.5))
	assert.Equal(t, Tropical(1.5), Tropical(1.3).Quantize(0.5))
}

func TestLogPlusMatchesLogSumExp(t *testing.T) {
	// plus(0,0) in -log space should equal -log(2)
	got := Log(0).Plus(Log(0))
	want := Log(-0.6931471805599453)
	assert.InDelta(t, float64(want), float64(got), 1e-9)
}

func TestLogIdentities(t *testing.T) {
	sr := LogSemiring{}
	w := Log(2.0)
	assert.True(t, w.Plus(sr.Zero()).Equal(w))
	assert.True(t, w.Times(sr.One()).Equal(w))
}

func TestBooleanSemiring(t *testing.T) {
	sr := BooleanSemiring{}
	assert.Equal(t, Boolean(true), Boolean(true).Plus(Boolean(false)))
	assert.Equal(t, Boolean(false), Boolean(true).Times(Boolean(false)))
	assert.True(t, sr.Zero().IsZero())
	assert.True(t, sr.One().IsOne())
}

func TestSemiringErrorIs(t *testing.T) {
	e1 := &Error{Kind: DivideByZero, Message: "a"}
	e2 := &Error{Kind: DivideByZero, Message: "b"}
	assert.ErrorIs(t, e1, e2)
}
