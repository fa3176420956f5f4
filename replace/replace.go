// Package replace implements non-terminal substitution (spec.md §4.M): a
// lazy.Kernel whose states are frames of a call stack, each frame a
// (sub-fst, state-in-sub-fst, continuation) triple. An arc whose
// ILabel and OLabel both equal a registered non-terminal label pushes a
// new frame into the named sub-fst; a final state in a non-root frame
// pops back to its continuation. Grounded on the teacher's recursive-
// descent/pushdown shape in nfa/compile.go (a stack of in-progress
// frames during compilation), generalized from parser recursion to FST
// recursion, and on rustfst's replace-driven closure construction.
package replace

import (
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/internal/statetable"
	"github.com/coregx/fstcore/lazy"
	"github.com/coregx/fstcore/semiring"
)

// frameKey identifies one stack frame: a state inside one of the named
// sub-fsts, plus where to resume (by this engine's own state id) once
// that sub-fst's current call returns. parent is fst.NoStateID for the
// root frame, which has nothing to return to.
type frameKey struct {
	label  fst.Label
	state  fst.StateID
	parent fst.StateID
}

// Engine is a lazy.Kernel[W] implementing replace. Non-terminal arcs
// are recognized by ILabel == OLabel == one of the registered labels;
// spec.md §4.M's "dedicated NO_LABEL value tags non-terminal slots" is
// realized here as the emitted call arc carrying fst.NoLabel on both
// sides, distinguishing a synthetic push from a real ε-arc.
type Engine[W semiring.Weight[W]] struct {
	subFsts map[fst.Label]fst.Fst[W]
	rootFst fst.Label
	table   *statetable.Table[frameKey]
}

// New builds a replace engine over subFsts (keyed by non-terminal
// label) rooted at root.
func New[W semiring.Weight[W]](subFsts map[fst.Label]fst.Fst[W], root fst.Label) *Engine[W] {
	return &Engine[W]{subFsts: subFsts, rootFst: root, table: statetable.New[frameKey]()}
}

// ComputeStart implements lazy.Kernel.
func (e *Engine[W]) ComputeStart() (fst.StateID, error) {
	root, ok := e.subFsts[e.rootFst]
	if !ok {
		return fst.NoStateID, &Error{Kind: UnknownNonTerminal, Message: "root non-terminal has no registered sub-fst"}
	}
	start := root.Start()
	if start == fst.NoStateID {
		return fst.NoStateID, nil
	}
	id, _ := e.table.FindID(frameKey{label: e.rootFst, state: start, parent: fst.NoStateID})
	return id, nil
}

// ComputeFinal implements lazy.Kernel: the replace FST is final at a
// frame only when its own sub-fst state is final AND the frame is the
// root (nothing left on the stack to return to).
func (e *Engine[W]) ComputeFinal(s fst.StateID) (W, bool, error) {
	var zero W
	key, ok := e.table.FindTuple(s)
	if !ok {
		return zero, false, &Error{Kind: UnknownState, Message: "final query for an unassigned replace state"}
	}
	if key.parent != fst.NoStateID {
		return zero, false, nil
	}
	sub, ok := e.subFsts[key.label]
	if !ok {
		return zero, false, &Error{Kind: UnknownNonTerminal, Message: "frame references an unregistered sub-fst"}
	}
	w, isFinal := sub.Final(key.state)
	return w, isFinal, nil
}

// Expand implements lazy.Kernel: copy arcs of the current sub-fst,
// pushing on non-terminal arcs and popping at final states (spec.md
// §4.M).
func (e *Engine[W]) Expand(s fst.StateID) ([]fst.Arc[W], error) {
	key, ok := e.table.FindTuple(s)
	if !ok {
		return nil, &Error{Kind: UnknownState, Message: "expand of an unassigned replace state"}
	}
	sub, ok := e.subFsts[key.label]
	if !ok {
		return nil, &Error{Kind: UnknownNonTerminal, Message: "frame references an unregistered sub-fst"}
	}

	var arcs []fst.Arc[W]

	for _, a := range sub.Arcs(key.state) {
		if a.ILabel == a.OLabel && a.ILabel != fst.Eps {
			if childFst, isNonTerminal := e.subFsts[a.ILabel]; isNonTerminal {
				// An empty sub-fst has no start state to call into: the
				// non-terminal yields no arcs from this branch at all,
				// rather than pushing a frame keyed on NoStateID.
				if childFst.Start() == fst.NoStateID {
					continue
				}
				contID, _ := e.table.FindID(frameKey{label: key.label, state: a.NextState, parent: key.parent})
				pushID, _ := e.table.FindID(frameKey{label: a.ILabel, state: childFst.Start(), parent: contID})
				arcs = append(arcs, fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: a.Weight, NextState: pushID})
				continue
			}
		}
		nid, _ := e.table.FindID(frameKey{label: key.label, state: a.NextState, parent: key.parent})
		arcs = append(arcs, fst.Arc[W]{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight, NextState: nid})
	}

	if key.parent != fst.NoStateID {
		if w, isFinal := sub.Final(key.state); isFinal {
			arcs = append(arcs, fst.Arc[W]{ILabel: fst.Eps, OLabel: fst.Eps, Weight: w, NextState: key.parent})
		}
	}

	return arcs, nil
}

var _ lazy.Kernel[semiring.Tropical] = (*Engine[semiring.Tropical])(nil)
