package reachability

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/internal/interval"
	"github.com/coregx/fstcore/semiring"
)

// StateReachability holds, per state of an acyclic auxiliary Fst, a
// dense topological rank and the interval set of label indices
// reachable from that state (spec.md §4.D).
//
// A state with no outgoing arcs ("leaf") is a synthetic per-label sink
// built by LabelReachability (§4.E): its own rank *is* the label index
// other states splice in as a singleton when they hold a direct arc to
// it. Non-leaf states union in their successors' full interval sets.
type StateReachability struct {
	rank  map[fst.StateID]int
	isets []*interval.Set
}

// Rank returns the dense topological index assigned to s, and whether s
// was visited at all (every state reachable from the Fst's start, plus
// every state visited as an arc target, receives one).
func (r *StateReachability) Rank(s fst.StateID) (int, bool) {
	i, ok := r.rank[s]
	return i, ok
}

// IntervalSet returns the interval set for the state holding the given
// rank (as returned by Rank).
func (r *StateReachability) IntervalSet(rank int) *interval.Set {
	if rank < 0 || rank >= len(r.isets) {
		return interval.NewSet()
	}
	return r.isets[rank]
}

type countableFst interface {
	NumStates() int
}

// ComputeStateReachability runs the DFS post-order reachability
// computation of spec.md §4.D over f. f is expected to be acyclic in
// its reachable subgraph (LabelReachability's auxiliary construction,
// §4.E, guarantees this save for epsilon-cycles in a pathological
// operand); a cycle is handled by simply not re-descending into an
// in-progress (gray) state, which yields a sound but possibly
// incomplete interval set for the states on the cycle rather than
// infinite recursion.
func ComputeStateReachability(f fst.Fst[semiring.Boolean]) (*StateReachability, error) {
	counter, ok := f.(countableFst)
	if !ok {
		return nil, &Error{Kind: NotExpanded, Message: "state reachability requires an expanded (countable) Fst"}
	}
	n := counter.NumStates()

	const (
		white uint8 = iota
		gray
		black
	)
	visited := make([]uint8, n)
	rank := make(map[fst.StateID]int, n)
	isets := make([]*interval.Set, 0, n)

	var visit func(s fst.StateID)
	visit = func(s fst.StateID) {
		if int(s) >= n || visited[s] != white {
			return
		}
		visited[s] = gray

		set := interval.NewSet()
		for _, a := range f.Arcs(s) {
			t := a.NextState
			if int(t) >= n || visited[t] == gray {
				continue
			}
			visit(t)
			childRank, ok := rank[t]
			if !ok {
				continue
			}
			if len(f.Arcs(t)) == 0 {
				set.AddLabel(uint64(childRank))
			} else {
				set.Union(isets[childRank])
			}
		}

		isets = append(isets, set)
		rank[s] = len(isets) - 1
		visited[s] = black
	}

	if start := f.Start(); start != fst.NoStateID {
		visit(start)
	}
	for s := 0; s < n; s++ {
		visit(fst.StateID(s))
	}

	return &StateReachability{rank: rank, isets: isets}, nil
}
