package cache

import "github.com/coregx/fstcore/fst"

type flagBits uint8

const (
	flagExpanding flagBits = 1 << iota
	flagExpanded
	flagHasFinal
	flagFinalDone
)

type entry[W any] struct {
	arcs  []fst.Arc[W]
	final W
	flags flagBits
}

// Cache holds, per state, the arcs and optional final weight a lazy
// kernel has computed so far. Grounded directly on the teacher's
// dfa/lazy.Cache (map-keyed state storage with hit/expansion tracking);
// unlike the teacher, keys here are caller-assigned fst.StateIDs (the
// state table, §4.J, already owns id assignment) rather than ids minted
// by the cache itself, and there is no eviction: the core has no
// concurrency model (§5), so states simply accumulate for the lifetime
// of the lazy Fst.
type Cache[W any] struct {
	states    map[fst.StateID]*entry[W]
	maxStates uint32 // 0 means unlimited
}

// New creates an empty Cache with no state limit.
func New[W any]() *Cache[W] {
	return &Cache[W]{states: make(map[fst.StateID]*entry[W])}
}

// NewLimited creates an empty Cache that refuses to begin expanding a
// new state once maxStates are already cached (config.CacheConfig.
// MaxStates, spec.md §4.H). maxStates == 0 means unlimited, same as New.
func NewLimited[W any](maxStates uint32) *Cache[W] {
	return &Cache[W]{states: make(map[fst.StateID]*entry[W]), maxStates: maxStates}
}

func (c *Cache[W]) get(s fst.StateID) *entry[W] {
	e, ok := c.states[s]
	if !ok {
		e = &entry[W]{}
		c.states[s] = e
	}
	return e
}

// Expanded reports whether s's arcs have been fully computed.
func (c *Cache[W]) Expanded(s fst.StateID) bool {
	e, ok := c.states[s]
	return ok && e.flags&flagExpanded != 0
}

// HasFinal reports whether s is final, i.e. a final weight (of any
// value) was recorded for it via SetFinal.
func (c *Cache[W]) HasFinal(s fst.StateID) bool {
	e, ok := c.states[s]
	return ok && e.flags&flagHasFinal != 0
}

// FinalDone reports whether s's final status has already been queried
// (via SetFinal or MarkNotFinal), whether or not s turned out final.
// The lazy substrate uses this to avoid re-invoking the kernel for
// states with no final weight.
func (c *Cache[W]) FinalDone(s fst.StateID) bool {
	e, ok := c.states[s]
	return ok && e.flags&flagFinalDone != 0
}

// MarkNotFinal records that s's final status was queried and s is not
// final, without assigning a final weight.
func (c *Cache[W]) MarkNotFinal(s fst.StateID) {
	e := c.get(s)
	e.flags |= flagFinalDone
}

// BeginExpand marks s as currently being expanded, returning a
// *Error{Kind: Reentrant} if s is already mid-expansion (spec.md §4.H
// invariant: concurrent re-entry for the same state is an error), or a
// *Error{Kind: StatesExceeded} if s is new and the cache already holds
// maxStates entries.
func (c *Cache[W]) BeginExpand(s fst.StateID) error {
	if _, exists := c.states[s]; !exists {
		if c.maxStates > 0 && uint32(len(c.states)) >= c.maxStates {
			return &Error{Kind: StatesExceeded, Message: "cache exceeded its configured MaxStates limit"}
		}
	}
	e := c.get(s)
	if e.flags&flagExpanding != 0 {
		return &Error{Kind: Reentrant, Message: "reentrant expansion of the same state"}
	}
	e.flags |= flagExpanding
	return nil
}

// MarkExpanded records that s's expansion has completed: no further
// PushArc calls are expected for s, and Expanded(s) becomes true.
func (c *Cache[W]) MarkExpanded(s fst.StateID) {
	e := c.get(s)
	e.flags = e.flags&^flagExpanding | flagExpanded
}

// PushArc appends a to s's arc list. Must only be called between
// BeginExpand(s) and MarkExpanded(s).
func (c *Cache[W]) PushArc(s fst.StateID, a fst.Arc[W]) error {
	e := c.get(s)
	if e.flags&flagExpanding == 0 {
		return &Error{Kind: Reentrant, Message: "PushArc outside of an active expansion"}
	}
	e.arcs = append(e.arcs, a)
	return nil
}

// SetFinal records s's final weight.
func (c *Cache[W]) SetFinal(s fst.StateID, w W) {
	e := c.get(s)
	e.final = w
	e.flags |= flagHasFinal | flagFinalDone
}

// NumArcs returns the number of arcs cached so far for s.
func (c *Cache[W]) NumArcs(s fst.StateID) int {
	e, ok := c.states[s]
	if !ok {
		return 0
	}
	return len(e.arcs)
}

// Arcs returns s's cached arcs, in push order. The returned slice must
// not be mutated by the caller.
func (c *Cache[W]) Arcs(s fst.StateID) []fst.Arc[W] {
	e, ok := c.states[s]
	if !ok {
		return nil
	}
	return e.arcs
}

// Final returns s's cached final weight and whether it was set.
func (c *Cache[W]) Final(s fst.StateID) (W, bool) {
	e, ok := c.states[s]
	if !ok {
		var zero W
		return zero, false
	}
	return e.final, e.flags&flagHasFinal != 0
}
