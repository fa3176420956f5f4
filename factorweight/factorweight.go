// Package factorweight implements the factor-weight transform (spec.md
// §4.N): a lazy.Kernel whose states are (optional operand state,
// residual weight) elements, generalizing the second step of input
// epsilon-normalization to an arbitrary weight factorization supplied
// by a FactorIterator. Grounded directly on rustfst's
// factor_weight.rs (FactorWeightImpl::expand/compute_start/
// compute_final), ported without its "unfactored" one-weight fast
// path, which spec.md §4.N does not call for.
package factorweight

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/internal/statetable"
	"github.com/coregx/fstcore/lazy"
	"github.com/coregx/fstcore/semiring"
)

// Mode is a bitset selecting which weight locations get factored.
type Mode uint8

const (
	// FactorArcWeights factors the weight of every traversed arc.
	FactorArcWeights Mode = 1 << iota
	// FactorFinalWeights factors final weights (including the weight
	// accumulated by a state that is itself a factoring residual).
	FactorFinalWeights
)

// Config tunes factor-weight construction (spec.md §4.N).
type Config struct {
	Mode                 Mode
	Delta                float64
	FinalILabel          fst.Label
	FinalOLabel          fst.Label
	IncrementFinalILabel bool
	IncrementFinalOLabel bool
}

// DefaultConfig factors both arc and final weights with a modest
// quantization delta and epsilon final-arc labels.
func DefaultConfig() Config {
	return Config{Mode: FactorArcWeights | FactorFinalWeights, Delta: 1e-6}
}

// Factor is one (front, residual) pair from a FactorIterator: front is
// emitted as an arc weight, residual carries forward into the next
// state's key.
type Factor[W any] struct {
	Front, Residual W
}

// Iterator splits a weight into a finite sequence of Factor pairs whose
// product (under the semiring's Times) recombines to the original
// weight. Done reports whether w needs no further factoring at all
// (the iterator would yield nothing); Next yields the next pair, or
// false once exhausted.
type Iterator[W any] interface {
	Done() bool
	Next() (Factor[W], bool)
}

// NewIterator constructs a fresh Iterator over w. Callers supply this
// as a factory since the concrete factoring strategy (e.g. splitting a
// string weight into symbols) is specific to the weight type in use.
type NewIterator[W any] func(w W) Iterator[W]

// comparableWeight is the constraint factor-weight's state keys need:
// ordinary semiring arithmetic, quantization (to bound the number of
// distinct residual keys), and comparability (to key a map).
type comparableWeight[W any] interface {
	semiring.Weight[W]
	semiring.Quantizable[W]
	comparable
}

// element is a factor-weight state: either a live operand state plus
// the weight mass still to be discharged (hasState true), or a pure
// residual with no further operand transitions (hasState false),
// keyed directly by its (already-quantized) weight.
type element[W comparableWeight[W]] struct {
	hasState bool
	state    fst.StateID
	weight   W
}

// Engine is a lazy.Kernel[W] implementing factor-weight.
type Engine[W comparableWeight[W]] struct {
	f       fst.Fst[W]
	sr      semiring.Semiring[W]
	cfg     Config
	newIter NewIterator[W]
	table   *statetable.Table[element[W]]
}

// New builds a factor-weight engine over f under cfg, using newIter to
// factor weights.
func New[W comparableWeight[W]](f fst.Fst[W], sr semiring.Semiring[W], cfg Config, newIter NewIterator[W]) *Engine[W] {
	return &Engine[W]{f: f, sr: sr, cfg: cfg, newIter: newIter, table: statetable.New[element[W]]()}
}

func (e *Engine[W]) factorArcWeights() bool   { return e.cfg.Mode&FactorArcWeights != 0 }
func (e *Engine[W]) factorFinalWeights() bool { return e.cfg.Mode&FactorFinalWeights != 0 }

// ComputeStart implements lazy.Kernel.
func (e *Engine[W]) ComputeStart() (fst.StateID, error) {
	start := e.f.Start()
	if start == fst.NoStateID {
		return fst.NoStateID, nil
	}
	id, _ := e.table.FindID(element[W]{hasState: true, state: start, weight: e.sr.One()})
	return id, nil
}

// ComputeFinal implements lazy.Kernel.
func (e *Engine[W]) ComputeFinal(s fst.StateID) (W, bool, error) {
	var zero W
	elt, ok := e.table.FindTuple(s)
	if !ok {
		return zero, false, &Error{Kind: UnknownState, Message: "final query for an unassigned factor-weight state"}
	}

	weight := elt.weight
	if elt.hasState {
		fw, isFinal := e.f.Final(elt.state)
		if !isFinal {
			fw = e.sr.Zero()
		}
		weight = elt.weight.Times(fw)
	}

	it := e.newIter(weight)
	if !weight.IsZero() && (!e.factorFinalWeights() || it.Done()) {
		return weight, true, nil
	}
	return zero, false, nil
}

// Expand implements lazy.Kernel: arcs of the current operand state
// (each weight re-factored), plus a final-weight factoring chain when
// this element is (or leads to) a final weight (spec.md §4.N).
func (e *Engine[W]) Expand(s fst.StateID) ([]fst.Arc[W], error) {
	elt, ok := e.table.FindTuple(s)
	if !ok {
		return nil, &Error{Kind: UnknownState, Message: "expand of an unassigned factor-weight state"}
	}

	var arcs []fst.Arc[W]

	if elt.hasState {
		for _, a := range e.f.Arcs(elt.state) {
			weight := elt.weight.Times(a.Weight)
			it := e.newIter(weight)
			if !e.factorArcWeights() || it.Done() {
				dest, _ := e.table.FindID(element[W]{hasState: true, state: a.NextState, weight: e.sr.One()})
				arcs = append(arcs, fst.Arc[W]{ILabel: a.ILabel, OLabel: a.OLabel, Weight: weight, NextState: dest})
				continue
			}
			for {
				pair, more := it.Next()
				if !more {
					break
				}
				dest, _ := e.table.FindID(element[W]{hasState: true, state: a.NextState, weight: pair.Residual.Quantize(e.cfg.Delta)})
				arcs = append(arcs, fst.Arc[W]{ILabel: a.ILabel, OLabel: a.OLabel, Weight: pair.Front, NextState: dest})
			}
		}
	}

	if e.factorFinalWeights() {
		isFinalHere := !elt.hasState
		weight := elt.weight
		if elt.hasState {
			if fw, isFinal := e.f.Final(elt.state); isFinal {
				isFinalHere = true
				weight = elt.weight.Times(fw)
			}
		}
		if isFinalHere {
			ilabel, olabel := e.cfg.FinalILabel, e.cfg.FinalOLabel
			it := e.newIter(weight)
			for {
				pair, more := it.Next()
				if !more {
					break
				}
				dest, _ := e.table.FindID(element[W]{hasState: false, weight: pair.Residual.Quantize(e.cfg.Delta)})
				arcs = append(arcs, fst.Arc[W]{ILabel: ilabel, OLabel: olabel, Weight: pair.Front, NextState: dest})
				if e.cfg.IncrementFinalILabel {
					ilabel++
				}
				if e.cfg.IncrementFinalOLabel {
					olabel++
				}
			}
		}
	}

	return arcs, nil
}

var _ lazy.Kernel[semiring.Tropical] = (*Engine[semiring.Tropical])(nil)
