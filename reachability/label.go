package reachability

import (
	"sort"

	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/semiring"
)

// LabelReachability answers, for a given state of one composition
// operand, "can label l be the next non-ε label read along some path from
// here" (spec.md §4.E): every labeled arc ends the search, so labels that
// lie behind another labeled arc are not reachable from s, and a final
// state counts only when it is reached over ε-arcs alone. It is built
// once per operand side (input or output)
// and shared by every LookAheadMatcher wrapping that side.
type LabelReachability[W semiring.Weight[W]] struct {
	reachInput bool
	label2idx  map[fst.Label]uint64
	finalLabel uint64
	sr         *StateReachability
}

// NewLabelReachability builds label-reachability data for f, reachable
// over input labels when reachInput is true, output labels otherwise.
// f must be expanded (countableFst): construction needs the exact state
// count to build the auxiliary transform (§4.E steps 1-4).
func NewLabelReachability[W semiring.Weight[W]](f fst.Fst[W], reachInput bool) (*LabelReachability[W], error) {
	counter, ok := f.(countableFst)
	if !ok {
		return nil, &Error{Kind: NotExpanded, Message: "label reachability requires an expanded (countable) Fst"}
	}
	n := counter.NumStates()

	aux := fst.NewVectorFst[semiring.Boolean]()
	for i := 0; i < n; i++ {
		aux.AddState()
	}

	label2state := make(map[fst.Label]fst.StateID)
	indeg := make([]int, n)
	growIndeg := func(s fst.StateID) {
		for len(indeg) <= int(s) {
			indeg = append(indeg, 0)
		}
	}

	sinkFor := func(label fst.Label) fst.StateID {
		if s, ok := label2state[label]; ok {
			return s
		}
		s := aux.AddState()
		label2state[label] = s
		growIndeg(s)
		aux.SetFinal(s, semiring.BooleanSemiring{}.One())
		return s
	}

	for s := 0; s < n; s++ {
		src := fst.StateID(s)
		for _, a := range f.Arcs(src) {
			label := a.ILabel
			if !reachInput {
				label = a.OLabel
			}
			if label == fst.Eps {
				aux.AddArc(src, fst.Arc[semiring.Boolean]{ILabel: fst.Eps, OLabel: fst.Eps, Weight: semiring.Boolean(true), NextState: a.NextState})
				indeg[a.NextState]++
				continue
			}
			sink := sinkFor(label)
			aux.AddArc(src, fst.Arc[semiring.Boolean]{ILabel: label, OLabel: label, Weight: semiring.Boolean(true), NextState: sink})
			indeg[sink]++
		}
		if fw, isFinal := f.Final(src); isFinal && !fw.IsZero() {
			sink := sinkFor(fst.NoLabel)
			aux.AddArc(src, fst.Arc[semiring.Boolean]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: semiring.Boolean(true), NextState: sink})
			indeg[sink]++
		}
	}

	start := aux.AddState()
	growIndeg(start)
	aux.SetStart(start)
	for s := 0; s < n; s++ {
		if indeg[s] == 0 {
			aux.AddArc(start, fst.Arc[semiring.Boolean]{ILabel: fst.Eps, OLabel: fst.Eps, Weight: semiring.Boolean(true), NextState: fst.StateID(s)})
		}
	}

	sr, err := ComputeStateReachability(aux)
	if err != nil {
		return nil, err
	}

	label2idx := make(map[fst.Label]uint64, len(label2state))
	var finalLabel uint64
	for label, sinkState := range label2state {
		r, ok := sr.Rank(sinkState)
		if !ok {
			continue
		}
		label2idx[label] = uint64(r)
		if label == fst.NoLabel {
			finalLabel = uint64(r)
		}
	}

	return &LabelReachability[W]{
		reachInput: reachInput,
		label2idx:  label2idx,
		finalLabel: finalLabel,
		sr:         sr,
	}, nil
}

// ReachInput reports whether this data was built over input labels.
func (lr *LabelReachability[W]) ReachInput() bool { return lr.reachInput }

// Relabel maps label to its stored internal index, allocating a fresh,
// strictly-monotone index for a previously-unseen label (spec.md §9:
// the relabeler never returns Eps for a new label).
func (lr *LabelReachability[W]) Relabel(label fst.Label) uint64 {
	if label == fst.Eps {
		return 0
	}
	if idx, ok := lr.label2idx[label]; ok {
		return idx
	}
	idx := uint64(1)
	for _, v := range lr.label2idx {
		if v >= idx {
			idx = v + 1
		}
	}
	lr.label2idx[label] = idx
	return idx
}

// RelabelFst rewrites input (or output, per relabelInput) labels of
// target in place through Relabel and re-sorts its arcs by the chosen
// label, per spec.md §4.E. After this call the rewritten labels equal
// the dense indices ReachRange's binary-search strategy relies on.
func RelabelFst[W semiring.Weight[W]](lr *LabelReachability[W], target fst.MutableFst[W], relabelInput bool) {
	n := target.NumStates()
	for s := 0; s < n; s++ {
		arcs := target.Arcs(fst.StateID(s))
		rewritten := make([]fst.Arc[W], len(arcs))
		for i, a := range arcs {
			if relabelInput {
				a.ILabel = fst.Label(lr.Relabel(a.ILabel))
			} else {
				a.OLabel = fst.Label(lr.Relabel(a.OLabel))
			}
			rewritten[i] = a
		}
		if relabelInput {
			sort.Slice(rewritten, func(i, j int) bool { return rewritten[i].ILabel < rewritten[j].ILabel })
		} else {
			sort.Slice(rewritten, func(i, j int) bool { return rewritten[i].OLabel < rewritten[j].OLabel })
		}
		replaceArcs(target, fst.StateID(s), rewritten)
	}
	if relabelInput {
		target.SetProperties(target.Properties() | fst.ILabelSorted)
	} else {
		target.SetProperties(target.Properties() | fst.OLabelSorted)
	}
}

// replaceArcs overwrites state s's arcs with arcs, by deleting and
// re-adding (MutableFst has no bulk-replace primitive, matching its
// minimal §4.B contract).
func replaceArcs[W any](target fst.MutableFst[W], s fst.StateID, arcs []fst.Arc[W]) {
	if vf, ok := target.(interface{ ReplaceArcs(fst.StateID, []fst.Arc[W]) }); ok {
		vf.ReplaceArcs(s, arcs)
		return
	}
	for _, a := range arcs {
		target.AddArc(s, a)
	}
}

// ReachLabel reports whether label is reachable from state s (interval
// membership, spec.md §4.E).
func (lr *LabelReachability[W]) ReachLabel(s fst.StateID, label fst.Label) bool {
	idx, ok := lr.label2idx[label]
	if !ok {
		return false
	}
	return lr.reach(s, idx)
}

// ReachFinal reports whether a final state is reachable from s, i.e.
// whether lr.finalLabel is a member of s's interval set.
func (lr *LabelReachability[W]) ReachFinal(s fst.StateID) bool {
	return lr.reach(s, lr.finalLabel)
}

func (lr *LabelReachability[W]) reach(s fst.StateID, idx uint64) bool {
	rank, ok := lr.sr.Rank(s)
	if !ok {
		return false
	}
	return lr.sr.IntervalSet(rank).Member(idx)
}

// ReachRange narrows [begin, end) of arcs to the sub-range reachable
// from s, optionally accumulating their ⊕-sum weight via sr. arcs must
// already be relabeled and re-sorted by RelabelFst on the side this
// data was built over, so that an arc's (I/O)Label *is* its dense
// reachability index in ascending order over the range — this is what
// makes the binary-search strategy below valid.
//
// Two strategies are used depending on cardinality (spec.md §4.E): when
// the arc range is small relative to the interval set, scan arcs
// linearly and query interval membership directly; otherwise scan the
// interval set and binary-search the arc range for each interval's
// endpoints. Returns ok=false if no arc in range matches.
func ReachRange[W semiring.Weight[W]](
	lr *LabelReachability[W],
	s fst.StateID,
	arcs []fst.Arc[W],
	begin, end int,
	sr semiring.Semiring[W],
	computeWeight bool,
) (newBegin, newEnd int, weight W, ok bool) {
	indexOf := func(a fst.Arc[W]) uint64 {
		if lr.reachInput {
			return uint64(a.ILabel)
		}
		return uint64(a.OLabel)
	}

	rank, hasRank := lr.sr.Rank(s)
	if !hasRank {
		return 0, 0, sr.Zero(), false
	}
	iset := lr.sr.IntervalSet(rank)

	nArcs := end - begin
	nIntervals := iset.Count()

	weight = sr.Zero()
	foundAny := false
	accept := func(i int) {
		if !foundAny {
			newBegin = i
			foundAny = true
		}
		newEnd = i + 1
		if computeWeight {
			weight = weight.Plus(arcs[i].Weight)
		}
	}

	if 2*nArcs < nIntervals {
		for i := begin; i < end; i++ {
			if iset.Member(indexOf(arcs[i])) {
				accept(i)
			}
		}
	} else {
		for _, iv := range iset.Intervals() {
			lo := begin + sort.Search(end-begin, func(i int) bool { return indexOf(arcs[begin+i]) >= iv.Begin })
			hi := begin + sort.Search(end-begin, func(i int) bool { return indexOf(arcs[begin+i]) >= iv.End })
			for i := lo; i < hi && i < end; i++ {
				accept(i)
			}
		}
	}

	if !foundAny {
		return 0, 0, sr.Zero(), false
	}
	return newBegin, newEnd, weight, true
}
