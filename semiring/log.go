package semiring

import "math"

// Log is the log semiring: ⊕ is log-sum-exp (-log(e^-a + e^-b)), ⊗ is
// floating-point addition, 0 is +Inf, 1 is 0.0. It differs from Tropical
// only in Plus, and is used wherever exact (rather than Viterbi-
// approximate) path-sum weights are required.
type Log float64

// LogSemiring is the (stateless) Semiring[Log] instance.
type LogSemiring struct{}

func (LogSemiring) Zero() Log { return Log(math.Inf(1)) }
func (LogSemiring) One() Log  { return Log(0) }

func (w Log) Plus(other Log) Log {
	if w.IsZero() {
		return other
	}
	if other.IsZero() {
		return w
	}
	a, b := float64(w), float64(other)
	if a > b {
		a, b = b, a
	}
	return Log(a - math.Log1p(math.Exp(a-b)))
}

func (w Log) Times(other Log) Log { return w + other }

func (w Log) IsZero() bool { return math.IsInf(float64(w), 1) }

func (w Log) IsOne() bool { return float64(w) == 0 }

func (w Log) Equal(other Log) bool { return float64(w) == float64(other) }

func (w Log) Divide(other Log, _ DivideSide) (Log, error) {
	return w - other, nil
}

func (w Log) Quantize(delta float64) Log {
	if delta <= 0 || w.IsZero() {
		return w
	}
	return Log(math.Round(float64(w)/delta) * delta)
}

var (
	_ Weight[Log]          = Log(0)
	_ WeaklyDivisible[Log] = Log(0)
	_ Quantizable[Log]     = Log(0)
	_ Semiring[Log]        = LogSemiring{}
)
