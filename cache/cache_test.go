package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/fst"
)

func TestCacheExpandLifecycle(t *testing.T) {
	c := New[int]()
	s := fst.StateID(0)

	assert.False(t, c.Expanded(s))
	require.NoError(t, c.BeginExpand(s))
	require.NoError(t, c.PushArc(s, fst.Arc[int]{ILabel: 1, OLabel: 1, Weight: 5, NextState: 1}))
	require.NoError(t, c.PushArc(s, fst.Arc[int]{ILabel: 2, OLabel: 2, Weight: 6, NextState: 2}))
	c.MarkExpanded(s)

	assert.True(t, c.Expanded(s))
	assert.Equal(t, 2, c.NumArcs(s))
	assert.Equal(t, fst.Label(1), c.Arcs(s)[0].ILabel)
}

func TestCacheReentrantExpandIsError(t *testing.T) {
	c := New[int]()
	s := fst.StateID(0)
	require.NoError(t, c.BeginExpand(s))
	err := c.BeginExpand(s)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Reentrant, cerr.Kind)
}

func TestCachePushArcOutsideExpansionIsError(t *testing.T) {
	c := New[int]()
	s := fst.StateID(0)
	err := c.PushArc(s, fst.Arc[int]{})
	require.Error(t, err)
}

func TestCacheFinal(t *testing.T) {
	c := New[int]()
	s := fst.StateID(0)
	assert.False(t, c.HasFinal(s))

	c.SetFinal(s, 42)
	w, ok := c.Final(s)
	require.True(t, ok)
	assert.Equal(t, 42, w)
	assert.True(t, c.HasFinal(s))
}

func TestCacheMarkNotFinal(t *testing.T) {
	c := New[int]()
	s := fst.StateID(0)
	assert.False(t, c.FinalDone(s))
	c.MarkNotFinal(s)
	assert.True(t, c.FinalDone(s))
	assert.False(t, c.HasFinal(s))
}

func TestCacheLimitedRejectsNewStateBeyondMaxStates(t *testing.T) {
	c := NewLimited[int](2)
	require.NoError(t, c.BeginExpand(fst.StateID(0)))
	c.MarkExpanded(fst.StateID(0))
	require.NoError(t, c.BeginExpand(fst.StateID(1)))
	c.MarkExpanded(fst.StateID(1))

	err := c.BeginExpand(fst.StateID(2))
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, StatesExceeded, cerr.Kind)
}

func TestCacheLimitedStillServesAlreadyCachedState(t *testing.T) {
	c := NewLimited[int](1)
	require.NoError(t, c.BeginExpand(fst.StateID(0)))
	require.NoError(t, c.PushArc(fst.StateID(0), fst.Arc[int]{ILabel: 1, OLabel: 1, Weight: 9, NextState: 1}))
	c.MarkExpanded(fst.StateID(0))

	// Re-querying the already-counted state works even though the
	// cache is at its limit; only a genuinely new state is rejected.
	assert.True(t, c.Expanded(fst.StateID(0)))
	assert.Equal(t, 1, c.NumArcs(fst.StateID(0)))

	require.Error(t, c.BeginExpand(fst.StateID(1)))
}

func TestCacheUntouchedStateIsEmpty(t *testing.T) {
	c := New[int]()
	s := fst.StateID(7)
	assert.False(t, c.Expanded(s))
	assert.False(t, c.HasFinal(s))
	assert.Equal(t, 0, c.NumArcs(s))
	assert.Nil(t, c.Arcs(s))
}
