package semiring

// Boolean is the Boolean semiring: ⊕ is logical or, ⊗ is logical and,
// 0 is false, 1 is true. Used for acceptance-only FSTs (e.g. the
// auxiliary FST of label reachability's construction, §4.E, carries
// Boolean weights).
type Boolean bool

// BooleanSemiring is the (stateless) Semiring[Boolean] instance.
type BooleanSemiring struct{}

func (BooleanSemiring) Zero() Boolean { return Boolean(false) }
func (BooleanSemiring) One() Boolean  { return Boolean(true) }

func (w Boolean) Plus(other Boolean) Boolean  { return w || other }
func (w Boolean) Times(other Boolean) Boolean { return w && other }
func (w Boolean) IsZero() bool                { return !bool(w) }
func (w Boolean) IsOne() bool                 { return bool(w) }
func (w Boolean) Equal(other Boolean) bool    { return w == other }

// Boolean has no useful weak division (it is idempotent and not a
// group under ⊗ restricted to non-zero elements beyond the trivial
// case), so it intentionally does not implement WeaklyDivisible.

var (
	_ Weight[Boolean]   = Boolean(false)
	_ Semiring[Boolean] = BooleanSemiring{}
)
