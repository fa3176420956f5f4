package fst

import (
	"fmt"
	"io"
)

// Display writes f in the tab-separated text format from spec.md §6:
// one line per arc (src, dst, ilabel, olabel, [weight]), one line per
// final state (state, [weight]). The start state's arcs are printed
// first, then remaining states in id order, then final states.
//
// When showWeightOne is false, weights equal to one (IsOne) are omitted,
// matching the teacher's convention of eliding defaulted fields from
// debug output.
func Display[W interface {
	IsOne() bool
}](w io.Writer, f Fst[W], showWeightOne bool) error {
	start := f.Start()
	if start == NoStateID {
		return nil
	}

	writeState := func(s StateID) error {
		for _, a := range f.Arcs(s) {
			if showWeightOne || !a.Weight.IsOne() {
				if _, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%v\n", s, a.NextState, a.ILabel, a.OLabel, a.Weight); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", s, a.NextState, a.ILabel, a.OLabel); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := writeState(start); err != nil {
		return err
	}

	// Discover the state universe by the caller-visible NumStates when
	// available; otherwise callers of lazy FSTs should bound state
	// enumeration themselves (spec.md §4.I: the state universe may be
	// infinite for a lazy FST).
	if counter, ok := f.(interface{ NumStates() int }); ok {
		n := counter.NumStates()
		for s := StateID(0); int(s) < n; s++ {
			if s == start {
				continue
			}
			if err := writeState(s); err != nil {
				return err
			}
		}
		for s := StateID(0); int(s) < n; s++ {
			if fw, ok := f.Final(s); ok {
				if showWeightOne || !fw.IsOne() {
					if _, err := fmt.Fprintf(w, "%d\t%v\n", s, fw); err != nil {
						return err
					}
				} else {
					if _, err := fmt.Fprintf(w, "%d\n", s); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}
