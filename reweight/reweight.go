// Package reweight implements potential-vector reweighting (spec.md
// §4.O): an eager, in-place transform that shifts weight mass along a
// potential function π without changing any accepted string's total
// weight. Grounded directly on rustfst's reweight.rs.
package reweight

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/semiring"
)

// Direction selects which end of each arc the potential division lands
// on (spec.md §4.O).
type Direction int

const (
	// ToInitial pushes weight toward the start: each arc (p, q) becomes
	// π(p)⁻¹ ⊗ w ⊗ π(q). Requires the semiring be left-distributive.
	ToInitial Direction = iota
	// ToFinal pushes weight toward final states: each arc (p, q)
	// becomes π(p) ⊗ w ⊗ π(q)⁻¹. Requires right distributivity.
	ToFinal
)

// divisible is the weight capability Reweight needs: ordinary
// arithmetic plus weak division (spec.md §4.O).
type divisible[W any] interface {
	semiring.Weight[W]
	semiring.WeaklyDivisible[W]
}

// invert returns π⁻¹ via weak division, or (sr.Zero(), true) if π is
// itself Zero — spec.md §4.O's "zero potentials short-circuit" rule,
// which avoids dividing by an undefined inverse.
func invert[W divisible[W]](sr semiring.Semiring[W], pi W, side semiring.DivideSide) (W, bool) {
	if pi.IsZero() {
		return sr.Zero(), true
	}
	inv, err := sr.One().Divide(pi, side)
	if err != nil {
		return sr.Zero(), true
	}
	return inv, false
}

// Reweight mutates f in place: every arc's weight and every final
// weight is transformed per dir using the potential vector
// potentials (indexed by fst.StateID, one entry per state). States
// beyond len(potentials) are left untouched.
func Reweight[W divisible[W]](f fst.MutableFst[W], sr semiring.Semiring[W], potentials []W, dir Direction) {
	for p := 0; p < f.NumStates() && p < len(potentials); p++ {
		state := fst.StateID(p)
		arcs := f.Arcs(state)
		if len(arcs) > 0 {
			rewritten := make([]fst.Arc[W], len(arcs))
			for i, a := range arcs {
				rewritten[i] = reweightArc(sr, potentials, a, state, dir)
			}
			replaceArcs(f, state, rewritten)
		}

		if fw, isFinal := f.Final(state); isFinal {
			f.SetFinal(state, reweightFinal(sr, potentials[p], fw, dir))
		}
	}
}

// replaceArcs overwrites state s's arcs with arcs, by deleting and
// re-adding when the target doesn't expose VectorFst's bulk-replace
// escape hatch (MutableFst's §4.B contract has no such primitive).
// Matches reachability.RelabelFst's replaceArcs helper.
func replaceArcs[W any](target fst.MutableFst[W], s fst.StateID, arcs []fst.Arc[W]) {
	if vf, ok := target.(interface{ ReplaceArcs(fst.StateID, []fst.Arc[W]) }); ok {
		vf.ReplaceArcs(s, arcs)
		return
	}
	for _, a := range arcs {
		target.AddArc(s, a)
	}
}

func reweightArc[W divisible[W]](sr semiring.Semiring[W], potentials []W, a fst.Arc[W], from fst.StateID, dir Direction) fst.Arc[W] {
	piP := potentials[from]
	piQ := sr.One()
	if int(a.NextState) < len(potentials) {
		piQ = potentials[a.NextState]
	}

	switch dir {
	case ToInitial:
		invP, isZero := invert[W](sr, piP, semiring.DivideLeft)
		if isZero {
			a.Weight = sr.Zero()
			return a
		}
		a.Weight = invP.Times(a.Weight).Times(piQ)
	case ToFinal:
		invQ, isZero := invert[W](sr, piQ, semiring.DivideRight)
		if isZero {
			a.Weight = sr.Zero()
			return a
		}
		a.Weight = piP.Times(a.Weight).Times(invQ)
	}
	return a
}

// reweightFinal applies the symmetric treatment spec.md §4.O calls for:
// a final weight behaves like an arc into an implicit super-final state
// whose own potential is always One.
func reweightFinal[W divisible[W]](sr semiring.Semiring[W], piQ, final W, dir Direction) W {
	switch dir {
	case ToInitial:
		invQ, isZero := invert[W](sr, piQ, semiring.DivideLeft)
		if isZero {
			return sr.Zero().Times(final)
		}
		return invQ.Times(final)
	case ToFinal:
		return piQ.Times(final)
	}
	return final
}
