package semiring

import "math"

// Tropical is the min-plus (tropical) semiring: ⊕ is min, ⊗ is
// floating-point addition, 0 is +Inf, 1 is 0.0. It is the default weight
// for shortest-path style FSTs (e.g. ASR lattices) and is used
// throughout spec.md's end-to-end scenarios.
type Tropical float64

// TropicalSemiring is the (stateless) Semiring[Tropical] instance.
type TropicalSemiring struct{}

func (TropicalSemiring) Zero() Tropical { return Tropical(math.Inf(1)) }
func (TropicalSemiring) One() Tropical  { return Tropical(0) }

func (w Tropical) Plus(other Tropical) Tropical {
	if w < other {
		return w
	}
	return other
}

func (w Tropical) Times(other Tropical) Tropical { return w + other }

func (w Tropical) IsZero() bool { return math.IsInf(float64(w), 1) }

func (w Tropical) IsOne() bool { return float64(w) == 0 }

func (w Tropical) Equal(other Tropical) bool { return float64(w) == float64(other) }

// Divide solves other ⊗ x = w (DivideLeft) or x ⊗ other = w (DivideRight);
// both coincide here since ⊗ is commutative addition. Tropical weak
// division is total (subtraction), so this never errors; it is declared
// fallible only to satisfy the WeaklyDivisible contract.
func (w Tropical) Divide(other Tropical, _ DivideSide) (Tropical, error) {
	return w - other, nil
}

// Quantize rounds w to the nearest multiple of delta, used when Tropical
// weights key a state table (e.g. factor-weight residuals).
func (w Tropical) Quantize(delta float64) Tropical {
	if delta <= 0 || w.IsZero() {
		return w
	}
	return Tropical(math.Round(float64(w)/delta) * delta)
}

var (
	_ Weight[Tropical]          = Tropical(0)
	_ WeaklyDivisible[Tropical] = Tropical(0)
	_ Quantizable[Tropical]     = Tropical(0)
	_ Semiring[Tropical]        = TropicalSemiring{}
)
