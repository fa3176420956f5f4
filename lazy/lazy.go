package lazy

import (
	"github.com/coregx/fstcore/cache"
	"github.com/coregx/fstcore/fst"
)

// Kernel supplies the three on-demand computations the lazy substrate
// drives (spec.md §4.I): a state's outgoing arcs, the start state, and a
// state's final weight.
type Kernel[W any] interface {
	// Expand computes the full arc list for s. Called at most once per
	// state by the substrate.
	Expand(s fst.StateID) ([]fst.Arc[W], error)
	// ComputeStart computes the start state. Called at most once.
	ComputeStart() (fst.StateID, error)
	// ComputeFinal computes s's final weight. Called at most once per
	// state.
	ComputeFinal(s fst.StateID) (w W, isFinal bool, err error)
}

// Fst is the lazy Fst substrate: it satisfies fst.Fst[W] by calling into
// a Kernel on first query for a state and memoizing the result in a
// cache.Cache (spec.md §4.I). Modeled on the teacher's DFA.determinize-
// on-demand loop with its states []*State cache, generalized from a
// single concrete kernel (NFA subset construction) to any Kernel[W].
//
// Because fst.Fst's methods carry no error return, a kernel failure
// latches as a sticky, retrievable error (Err) rather than panicking;
// per spec.md §4.L this is "a fatal result of the triggering query" —
// once set, further queries on the affected Fst should be treated as
// undefined by the caller, but do not crash the process.
type Fst[W any] struct {
	kernel     Kernel[W]
	cache      *cache.Cache[W]
	properties fst.Properties

	startDone bool
	start     fst.StateID
	err       error
}

// New wraps kernel in a lazy Fst asserting the given static properties
// (e.g. fst.ILabelSorted, if the kernel guarantees sorted output), with
// no cap on the number of states the cache may hold.
func New[W any](kernel Kernel[W], properties fst.Properties) *Fst[W] {
	return &Fst[W]{kernel: kernel, cache: cache.New[W](), properties: properties}
}

// NewWithMaxStates is New, but the underlying cache refuses to expand a
// new state once maxStates are already cached (config.CacheConfig.
// MaxStates, spec.md §4.H) — the expansion then latches the cache's
// StatesExceeded error via Err(), the same sticky-fatal path a kernel
// failure takes.
func NewWithMaxStates[W any](kernel Kernel[W], properties fst.Properties, maxStates uint32) *Fst[W] {
	return &Fst[W]{kernel: kernel, cache: cache.NewLimited[W](maxStates), properties: properties}
}

// Err returns the first fatal kernel error encountered, or nil.
func (f *Fst[W]) Err() error { return f.err }

func (f *Fst[W]) setErr(err error) {
	if f.err == nil {
		f.err = &Error{Kind: KernelFailed, Message: "lazy kernel failed", Cause: err}
	}
}

func (f *Fst[W]) Start() fst.StateID {
	if !f.startDone {
		f.startDone = true
		s, err := f.kernel.ComputeStart()
		if err != nil {
			f.setErr(err)
			return fst.NoStateID
		}
		f.start = s
	}
	return f.start
}

func (f *Fst[W]) ensureExpanded(s fst.StateID) {
	if f.cache.Expanded(s) {
		return
	}
	if err := f.cache.BeginExpand(s); err != nil {
		f.setErr(err)
		return
	}
	arcs, err := f.kernel.Expand(s)
	if err != nil {
		f.cache.MarkExpanded(s)
		f.setErr(err)
		return
	}
	for _, a := range arcs {
		_ = f.cache.PushArc(s, a)
	}
	f.cache.MarkExpanded(s)
}

func (f *Fst[W]) NumArcs(s fst.StateID) int {
	f.ensureExpanded(s)
	return f.cache.NumArcs(s)
}

func (f *Fst[W]) Arcs(s fst.StateID) []fst.Arc[W] {
	f.ensureExpanded(s)
	return f.cache.Arcs(s)
}

func (f *Fst[W]) Final(s fst.StateID) (W, bool) {
	if !f.cache.FinalDone(s) {
		w, isFinal, err := f.kernel.ComputeFinal(s)
		if err != nil {
			f.setErr(err)
			var zero W
			return zero, false
		}
		if isFinal {
			f.cache.SetFinal(s, w)
		} else {
			f.cache.MarkNotFinal(s)
		}
	}
	return f.cache.Final(s)
}

func (f *Fst[W]) Properties() fst.Properties { return f.properties }

var _ fst.Fst[int] = (*Fst[int])(nil)
