package statetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fstcore/fst"
)

type composeKey struct {
	s1, s2 fst.StateID
	fs     int
}

func TestFindIDAssignsSequentialIDs(t *testing.T) {
	tb := New[composeKey]()

	id0, fresh0 := tb.FindID(composeKey{0, 0, 0})
	assert.Equal(t, fst.StateID(0), id0)
	assert.True(t, fresh0)

	id1, fresh1 := tb.FindID(composeKey{1, 0, 0})
	assert.Equal(t, fst.StateID(1), id1)
	assert.True(t, fresh1)

	idAgain, freshAgain := tb.FindID(composeKey{0, 0, 0})
	assert.Equal(t, id0, idAgain)
	assert.False(t, freshAgain)
}

func TestFindTupleRoundTrips(t *testing.T) {
	tb := New[composeKey]()
	key := composeKey{3, 4, 1}
	id, _ := tb.FindID(key)

	got, ok := tb.FindTuple(id)
	require.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = tb.FindTuple(fst.StateID(99))
	assert.False(t, ok)
}

func TestSize(t *testing.T) {
	tb := New[composeKey]()
	assert.Equal(t, 0, tb.Size())
	tb.FindID(composeKey{0, 0, 0})
	tb.FindID(composeKey{1, 0, 0})
	tb.FindID(composeKey{0, 0, 0})
	assert.Equal(t, 2, tb.Size())
}
