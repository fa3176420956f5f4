// Package compose implements the composition engine (spec.md §4.L): a
// lazy.Kernel driving two Fst operands through a pair of matchers and a
// composition filter, producing the product automaton on demand.
package compose

import (
	"fmt"

	"github.com/coregx/fstcore/compose/filter"
	"github.com/coregx/fstcore/config"
	"github.com/coregx/fstcore/fst"
	"github.com/coregx/fstcore/internal/statetable"
	"github.com/coregx/fstcore/matcher"
	"github.com/coregx/fstcore/semiring"
)

// ErrorKind classifies engine expansion failures.
type ErrorKind uint8

const (
	// UnknownState indicates an Expand/ComputeFinal call referenced a
	// state id the engine's own state table never assigned.
	UnknownState ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownState:
		return "UnknownState"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the Kind-tagged error type for this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// productKey identifies a composition product state: the operand
// states plus the filter's own progress state (spec.md §4.L, §4.J).
type productKey struct {
	s1, s2 fst.StateID
	fs     filter.FilterState
}

// Engine is a lazy.Kernel[W] implementing the product-construction
// algorithm of spec.md §4.L: states are ids the state table assigns to
// productKey tuples, with (start1, start2, filter.Start()) mapped to id
// 0 by construction order. Grounded on the teacher's meta.Engine
// top-level orchestration shape (pick a strategy, drive sub-components,
// cache results) and on rustfst's ComposeFst::expand for the product
// construction itself.
type Engine[W semiring.Weight[W]] struct {
	fst1, fst2 fst.Fst[W]
	m1, m2     matcher.Matcher[W]
	filter     filter.Filter[W]
	sr         semiring.Semiring[W]
	table      *statetable.Table[productKey]
}

// New builds a composition engine over fst1/fst2, matching fst1's
// output labels against fst2's input labels through m1/m2 and flt.
func New[W semiring.Weight[W]](fst1, fst2 fst.Fst[W], m1, m2 matcher.Matcher[W], flt filter.Filter[W], sr semiring.Semiring[W]) *Engine[W] {
	return &Engine[W]{fst1: fst1, fst2: fst2, m1: m1, m2: m2, filter: flt, sr: sr, table: statetable.New[productKey]()}
}

// BuildFilter selects inner's look-ahead wrapping per
// cfg.ConnectLookAhead (config.ComposeConfig, spec.md §4.K/§4.L): when
// disabled, inner is returned unwrapped and any look-ahead matchers
// behind it are never consulted by FilterArc; when enabled, inner is
// wrapped with filter.NewLookAheadFilter so they are.
func BuildFilter[W semiring.Weight[W]](inner filter.Filter[W], cfg config.ComposeConfig) filter.Filter[W] {
	if !cfg.ConnectLookAhead {
		return inner
	}
	return filter.NewLookAheadFilter[W](inner)
}

// ApplyLookAheadDepth bounds m's per-query arc scan at
// cfg.MaxLookAheadDepth (config.ComposeConfig, spec.md §4.G) when m is a
// look-ahead matcher; otherwise it is a no-op.
func ApplyLookAheadDepth[W semiring.Weight[W]](m matcher.Matcher[W], cfg config.ComposeConfig) {
	if la, ok := m.(*matcher.LookAheadMatcher[W]); ok {
		la.WithMaxLookAheadDepth(cfg.MaxLookAheadDepth)
	}
}

// ComputeStart implements lazy.Kernel.
func (e *Engine[W]) ComputeStart() (fst.StateID, error) {
	s1, s2 := e.fst1.Start(), e.fst2.Start()
	if s1 == fst.NoStateID || s2 == fst.NoStateID {
		return fst.NoStateID, nil
	}
	id, _ := e.table.FindID(productKey{s1, s2, e.filter.Start()})
	return id, nil
}

// ComputeFinal implements lazy.Kernel.
func (e *Engine[W]) ComputeFinal(s fst.StateID) (W, bool, error) {
	var zero W
	key, ok := e.table.FindTuple(s)
	if !ok {
		return zero, false, &Error{Kind: UnknownState, Message: "final query for an unassigned product state"}
	}

	w1, isFinal1 := e.fst1.Final(key.s1)
	w2, isFinal2 := e.fst2.Final(key.s2)
	if !isFinal1 || !isFinal2 {
		return zero, false, nil
	}

	e.filter.SetState(key.s1, key.s2, key.fs)
	e.filter.FilterFinal(&w1, &w2)
	return w1.Times(w2), true, nil
}

// effectiveLabel maps the engine's held-side sentinel (fst.NoLabel) back
// to the real emitted label fst.Eps; any other value passes through
// unchanged.
func effectiveLabel(l fst.Label) fst.Label {
	if l == fst.NoLabel {
		return fst.Eps
	}
	return l
}

// epsSelf builds the synthetic "held at ε" arc for side, staying at
// state s (spec.md §4.L step 3). Its NoLabel/NoLabel labels are the
// filter's signal that this side did not really advance.
func epsSelf[W semiring.Weight[W]](sr semiring.Semiring[W], s fst.StateID) fst.Arc[W] {
	return fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.NoLabel, Weight: sr.One(), NextState: s}
}

// tryPair runs a1, a2 through the filter and, if accepted, returns the
// emitted product arc. Both arcs are passed as pointers so the filter
// may mutate them (push-labels/push-weights wrappers).
func (e *Engine[W]) tryPair(a1, a2 fst.Arc[W]) (fst.Arc[W], bool) {
	nfs := e.filter.FilterArc(&a1, &a2)
	if nfs == filter.NoStateFS {
		var zero fst.Arc[W]
		return zero, false
	}
	nid, _ := e.table.FindID(productKey{a1.NextState, a2.NextState, nfs})
	return fst.Arc[W]{
		ILabel:    effectiveLabel(a1.ILabel),
		OLabel:    effectiveLabel(a2.OLabel),
		Weight:    a1.Weight.Times(a2.Weight),
		NextState: nid,
	}, true
}

// Expand implements lazy.Kernel: the product-construction algorithm of
// spec.md §4.L.
func (e *Engine[W]) Expand(s fst.StateID) ([]fst.Arc[W], error) {
	key, ok := e.table.FindTuple(s)
	if !ok {
		return nil, &Error{Kind: UnknownState, Message: "expand of an unassigned product state"}
	}
	s1, s2, fs := key.s1, key.s2, key.fs
	e.filter.SetState(s1, s2, fs)

	var arcs []fst.Arc[W]

	matchSide1 := e.m1.Priority(s1) <= e.m2.Priority(s2)

	if matchSide1 {
		for _, a1 := range e.fst1.Arcs(s1) {
			if a1.OLabel == fst.Eps {
				continue // handled below, paired with side 2 held at ε
			}
			for _, it2 := range e.m2.Iter(s2, a1.OLabel) {
				a2 := it2.Arc
				if it2.IsEps {
					a2 = epsSelf[W](e.sr, s2)
				}
				if arc, ok := e.tryPair(a1, a2); ok {
					arcs = append(arcs, arc)
				}
			}
		}
	} else {
		for _, a2 := range e.fst2.Arcs(s2) {
			if a2.ILabel == fst.Eps {
				continue // handled below, paired with side 1 held at ε
			}
			for _, it1 := range e.m1.Iter(s1, a2.ILabel) {
				a1 := it1.Arc
				if it1.IsEps {
					a1 = epsSelf[W](e.sr, s1)
				}
				if arc, ok := e.tryPair(a1, a2); ok {
					arcs = append(arcs, arc)
				}
			}
		}
	}

	// ε-only moves on side 1 alone: side 2 stays.
	for _, a1 := range e.fst1.Arcs(s1) {
		if a1.OLabel != fst.Eps {
			continue
		}
		if arc, ok := e.tryPair(a1, epsSelf[W](e.sr, s2)); ok {
			arcs = append(arcs, arc)
		}
	}

	// ε-only moves on side 2 alone: side 1 stays.
	for _, a2 := range e.fst2.Arcs(s2) {
		if a2.ILabel != fst.Eps {
			continue
		}
		if arc, ok := e.tryPair(epsSelf[W](e.sr, s1), a2); ok {
			arcs = append(arcs, arc)
		}
	}

	return arcs, nil
}
