package moment

import (
	"errors"
	"fmt"

	"github.com/hkcrc/riskcontour/obstacle"
	"github.com/hkcrc/riskcontour/poly"
)

var (
	ErrResidualUncertainty = errors.New("moment: uncertainty variable survived propagation")

	// ErrMomentOrder is returned when the supplied moment vector does not
	// reach the expanded polynomial's degree in w.
	ErrMomentOrder = poly.ErrMomentOrder
)

// Propagate expands g^d for d = 1, 2 and substitutes w^k -> moments[k],
// highest power first, producing the first and second raw moments of the
// spatial random field as polynomials in (x,y,z) alone. moments must cover
// orders 0..2*dg. A residual occurrence of w after substitution is an
// invariant violation and fails the computation.
func Propagate(m obstacle.Model, moments []float64) (Mg [2]poly.Poly, err error) {
	var (
		g  = m.Polynomial()
		dg = m.DegreeUncertain()
	)
	if len(moments) <= 2*dg {
		return Mg, fmt.Errorf("%w: need orders 0..%d, have %d values",
			ErrMomentOrder, 2*dg, len(moments))
	}
	for dd := 1; dd <= 2; dd++ {
		Md := g.Pow(dd)
		Mg[dd-1], err = Md.SubstPowers(poly.W, moments[:dd*dg+1])
		if err != nil {
			return Mg, fmt.Errorf("propagating order %d: %w", dd, err)
		}
		if Mg[dd-1].ContainsVar(poly.W) {
			return Mg, fmt.Errorf("%w: order %d: %s", ErrResidualUncertainty, dd, Mg[dd-1])
		}
	}
	return
}
