// Package statetable implements the bidirectional tuple<->dense-id map
// shared by composition ((s1, s2, filterState) keys, spec.md §4.J) and
// factor-weight ((state, residual weight) keys, §4.N). Grounded on the
// teacher's dfa/lazy.Cache id-assignment pattern (insert-or-get, ids
// minted sequentially starting from a reserved base), generalized from
// a single concrete key type to any comparable key.
package statetable

import "github.com/coregx/fstcore/fst"

// Table is a bijection between tuple keys of type K and dense
// fst.StateIDs, built incrementally as new keys are seen.
type Table[K comparable] struct {
	idOf  map[K]fst.StateID
	keyOf []K
}

// New creates an empty Table.
func New[K comparable]() *Table[K] {
	return &Table[K]{idOf: make(map[K]fst.StateID)}
}

// FindID returns the id assigned to key, inserting a fresh one (the
// next sequential id) if key has not been seen before. The second
// return value is true when a new id was just minted.
func (t *Table[K]) FindID(key K) (fst.StateID, bool) {
	if id, ok := t.idOf[key]; ok {
		return id, false
	}
	id := fst.StateID(len(t.keyOf))
	t.idOf[key] = id
	t.keyOf = append(t.keyOf, key)
	return id, true
}

// FindTuple returns the key stored for id, and whether id is known.
func (t *Table[K]) FindTuple(id fst.StateID) (K, bool) {
	if int(id) < 0 || int(id) >= len(t.keyOf) {
		var zero K
		return zero, false
	}
	return t.keyOf[id], true
}

// Size returns the number of keys registered so far.
func (t *Table[K]) Size() int { return len(t.keyOf) }
