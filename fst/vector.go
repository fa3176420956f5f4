package fst

// VectorFst is a concrete, eagerly-materialized MutableFst backed by
// per-state arc slices — the "external collaborator" representation
// spec.md §1 takes as given. Modeled after the teacher's nfa.State: a
// dense, growable vector of states, each holding its own transition
// list (nfa/nfa.go's transitions []Transition generalizes here to
// arcs []Arc[W]).
type VectorFst[W any] struct {
	start      StateID
	states     []vectorState[W]
	properties Properties
}

type vectorState[W any] struct {
	arcs        []Arc[W]
	final       W
	hasFinal    bool
	inEpsilons  int
	outEpsilons int
}

// NewVectorFst creates an empty VectorFst with no start state.
func NewVectorFst[W any]() *VectorFst[W] {
	return &VectorFst[W]{start: NoStateID}
}

func (f *VectorFst[W]) Start() StateID { return f.start }

func (f *VectorFst[W]) SetStart(s StateID) { f.start = s }

func (f *VectorFst[W]) NumStates() int { return len(f.states) }

func (f *VectorFst[W]) AddState() StateID {
	f.states = append(f.states, vectorState[W]{})
	return StateID(len(f.states) - 1)
}

func (f *VectorFst[W]) Final(s StateID) (W, bool) {
	st := &f.states[s]
	return st.final, st.hasFinal
}

func (f *VectorFst[W]) SetFinal(s StateID, w W) {
	st := &f.states[s]
	st.final = w
	st.hasFinal = true
}

func (f *VectorFst[W]) DeleteFinalWeight(s StateID) {
	st := &f.states[s]
	var zero W
	st.final = zero
	st.hasFinal = false
}

func (f *VectorFst[W]) NumArcs(s StateID) int { return len(f.states[s].arcs) }

func (f *VectorFst[W]) Arcs(s StateID) []Arc[W] { return f.states[s].arcs }

func (f *VectorFst[W]) AddArc(s StateID, a Arc[W]) {
	st := &f.states[s]
	st.arcs = append(st.arcs, a)
	if a.ILabel == Eps {
		st.inEpsilons++
	}
	if a.OLabel == Eps {
		st.outEpsilons++
	}
}

// ReplaceArcs overwrites all of s's outgoing arcs at once, recomputing
// its epsilon counters. Used by reachability.RelabelFst to re-sort arcs
// in place after relabeling.
func (f *VectorFst[W]) ReplaceArcs(s StateID, arcs []Arc[W]) {
	st := &f.states[s]
	st.arcs = arcs
	st.inEpsilons, st.outEpsilons = 0, 0
	for _, a := range arcs {
		if a.ILabel == Eps {
			st.inEpsilons++
		}
		if a.OLabel == Eps {
			st.outEpsilons++
		}
	}
}

func (f *VectorFst[W]) NumInputEpsilons(s StateID) int { return f.states[s].inEpsilons }

func (f *VectorFst[W]) NumOutputEpsilons(s StateID) int { return f.states[s].outEpsilons }

func (f *VectorFst[W]) Properties() Properties { return f.properties }

func (f *VectorFst[W]) SetProperties(p Properties) { f.properties = p }

var _ MutableFst[int] = (*VectorFst[int])(nil)
