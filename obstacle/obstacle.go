// Package obstacle defines the uncertain implicit obstacle model: a
// polynomial g(x,y,z,w) whose zero level bounds the obstacle, with w the
// random uncertainty parameter perturbing the boundary.
package obstacle

import (
	"errors"
	"fmt"

	"github.com/hkcrc/riskcontour/poly"
)

var ErrNoUncertainty = errors.New("obstacle: model has no dependence on the uncertainty variable")

// Model is an uncertain implicit obstacle. The degree in w is computed at
// construction; moment propagation iterates to twice this degree.
type Model struct {
	g  poly.Poly
	dg int
}

// New validates and wraps an obstacle polynomial. A model with no dependence
// on w is rejected - the induced field would be deterministic and the risk
// contour degenerate.
func New(g poly.Poly) (m Model, err error) {
	dg := g.Degree(poly.W)
	if dg == 0 {
		return Model{}, fmt.Errorf("%w: %s", ErrNoUncertainty, g)
	}
	return Model{g: g, dg: dg}, nil
}

func (m Model) Polynomial() poly.Poly { return m.g }

// DegreeUncertain returns dg, the polynomial degree of the model in w.
func (m Model) DegreeUncertain() int { return m.dg }

// Deterministic returns the w=0 obstacle polynomial, the surface the original
// mesh generator triangulated directly.
func (m Model) Deterministic() (g0 poly.Poly) {
	coeffs := m.g.Collect(poly.W)
	return coeffs[0]
}

// Heart builds the uncertain heart obstacle
//
//	g = -((5x)^2 + (9/4)(5y)^2 + (5z)^2 - 1)^3
//	    + (5x)^2 (5z)^3 + (9/80)(5y)^2 (5z)^3 + w
//
// The deterministic part is the negated heart implicit function, so g <= 0
// holds outside the (perturbed) heart surface. g is linear in w.
func Heart() Model {
	var (
		x5 = poly.ConstInt(5).Mul(poly.FromVar(poly.X))
		y5 = poly.ConstInt(5).Mul(poly.FromVar(poly.Y))
		z5 = poly.ConstInt(5).Mul(poly.FromVar(poly.Z))
	)
	shell := x5.Pow(2).
		Add(poly.ConstFrac(9, 4).Mul(y5.Pow(2))).
		Add(z5.Pow(2)).
		Sub(poly.ConstInt(1))
	g := shell.Pow(3).Neg().
		Add(x5.Pow(2).Mul(z5.Pow(3))).
		Add(poly.ConstFrac(9, 80).Mul(y5.Pow(2)).Mul(z5.Pow(3))).
		Add(poly.FromVar(poly.W))
	m, err := New(g)
	if err != nil {
		panic(err) // the fixed heart polynomial is linear in w
	}
	return m
}
