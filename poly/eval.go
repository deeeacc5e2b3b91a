package poly

import "fmt"

// Evaluator is a polynomial flattened into parallel coefficient/exponent
// arrays for pointwise evaluation in hot grid loops. It is immutable and
// safe for concurrent use.
type Evaluator struct {
	c          []float64
	ex, ey, ez []uint8
}

// Compile flattens a spatial polynomial for numeric evaluation. The
// polynomial must not depend on the uncertainty variable - sampling a field
// that still carries w is a propagation bug upstream.
func (p Poly) Compile() (e Evaluator, err error) {
	if p.ContainsVar(W) {
		return Evaluator{}, fmt.Errorf("poly: cannot compile, %s still present: %s", W, p)
	}
	ms := p.sortedMonomials()
	e = Evaluator{
		c:  make([]float64, len(ms)),
		ex: make([]uint8, len(ms)),
		ey: make([]uint8, len(ms)),
		ez: make([]uint8, len(ms)),
	}
	for i, m := range ms {
		e.c[i], _ = p.terms[m].Float64()
		e.ex[i], e.ey[i], e.ez[i] = m[X], m[Y], m[Z]
	}
	return
}

func (e Evaluator) At(x, y, z float64) (val float64) {
	for i, c := range e.c {
		val += c * ipow(x, e.ex[i]) * ipow(y, e.ey[i]) * ipow(z, e.ez[i])
	}
	return
}

// NumTerms reports the term count of the compiled form.
func (e Evaluator) NumTerms() int { return len(e.c) }

func ipow(x float64, n uint8) (p float64) {
	p = 1
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			p *= x
		}
		x *= x
	}
	return
}
