// Package closure implements concatenative closure (spec.md §4.M): a
// lazy variant built from a 1- or 2-state skeleton fed through replace,
// and an eager in-place mutator. Grounded directly on rustfst's
// closure.rs, which implements both forms side by side (the lazy
// ClosureFst-skeleton-plus-ReplaceFst shape, and the in-place mutating
// closure() function).
package closure

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/lazy"
	"github.com/coregx/fstcore/replace"
	"github.com/coregx/fstcore/semiring"
)

// Mode selects star (zero-or-more) or plus (one-or-more) closure.
type Mode int

const (
	Star Mode = iota
	Plus
)

// skeletonRoot is the non-terminal key of the skeleton handed to
// replace (label 0); the operand is registered at fst.NoLabel —
// mirroring rustfst's choice of std::usize::MAX as the
// reserved "this slot calls the operand" tag (spec.md §4.M: "a
// dedicated NO_LABEL value tags non-terminal slots").
const skeletonRoot fst.Label = 0

func buildSkeleton[W semiring.Weight[W]](mode Mode, sr semiring.Semiring[W]) *fst.VectorFst[W] {
	one := sr.One()
	f := fst.NewVectorFst[W]()
	switch mode {
	case Star:
		s0 := f.AddState()
		f.SetStart(s0)
		f.SetFinal(s0, one)
		f.AddArc(s0, fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: one, NextState: s0})
	case Plus:
		s0 := f.AddState()
		s1 := f.AddState()
		f.SetStart(s0)
		f.SetFinal(s1, one)
		f.AddArc(s0, fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: one, NextState: s1})
		f.AddArc(s1, fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: one, NextState: s1})
	}
	return f
}

// Lazy builds the closure of operand as a lazy Fst: a skeleton FST (one
// state for Star, two for Plus) whose sole arc(s) call operand as a
// replace non-terminal, fed through the replace engine (spec.md §4.M).
func Lazy[W semiring.Weight[W]](operand fst.Fst[W], mode Mode, sr semiring.Semiring[W]) *lazy.Fst[W] {
	skeleton := buildSkeleton[W](mode, sr)
	subFsts := map[fst.Label]fst.Fst[W]{
		skeletonRoot: skeleton,
		fst.NoLabel:  operand,
	}
	eng := replace.New[W](subFsts, skeletonRoot)
	return lazy.New[W](eng, 0)
}

// Eager mutates f in place into its own closure (spec.md §4.M): every
// final state gets an ε-arc back to the original start, weighted by
// that state's own final weight; for Star, a new super-start-and-final
// state is added ahead of the old start so the empty string is also
// accepted. Grounded directly on rustfst's closure() in-place function.
func Eager[W semiring.Weight[W]](f fst.MutableFst[W], mode Mode, sr semiring.Semiring[W]) {
	start := f.Start()

	if start != fst.NoStateID {
		type finalEntry struct {
			state  fst.StateID
			weight W
		}
		var finals []finalEntry
		for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
			if w, ok := f.Final(s); ok {
				finals = append(finals, finalEntry{s, w})
			}
		}
		for _, fe := range finals {
			f.AddArc(fe.state, fst.Arc[W]{ILabel: fst.Eps, OLabel: fst.Eps, Weight: fe.weight, NextState: start})
		}
	}

	// Star always gets a new super-start-and-final state, even over an
	// empty operand (no old start to arc back to) — that's what makes
	// closure-star(empty) accept the empty string and nothing else.
	if mode == Star {
		one := sr.One()
		nstart := f.AddState()
		if start != fst.NoStateID {
			f.AddArc(nstart, fst.Arc[W]{ILabel: fst.Eps, OLabel: fst.Eps, Weight: one, NextState: start})
		}
		f.SetStart(nstart)
		f.SetFinal(nstart, one)
	}
}
