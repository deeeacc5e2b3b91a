// Package poly implements exact multivariate polynomial arithmetic over the
// fixed variable set (X, Y, Z, W) with big.Rat coefficients. It is the narrow
// symbolic kernel the moment propagation needs: expansion, per-variable
// degree, coefficient collection and power substitution, plus compilation to
// a fast float64 evaluator for grid sampling.
package poly

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

type Var uint8

const (
	X Var = iota
	Y
	Z
	W
	nVars
)

var varNames = [nVars]string{"x", "y", "z", "w"}

func (v Var) String() string {
	if v >= nVars {
		panic(fmt.Sprintf("poly: unknown variable %d", uint8(v)))
	}
	return varNames[v]
}

var ErrMomentOrder = errors.New("poly: substitution values do not cover the variable degree")

// monomial is the exponent tuple of a single term
type monomial [nVars]uint8

// Poly is an immutable sum of monomials. The zero value is the zero
// polynomial. All operations are functional - inputs are never mutated.
type Poly struct {
	terms map[monomial]*big.Rat
}

func Zero() Poly { return Poly{} }

func Constant(c *big.Rat) Poly {
	p := newPoly()
	p.addTerm(monomial{}, c)
	return p.normalize()
}

func ConstInt(n int64) Poly { return Constant(new(big.Rat).SetInt64(n)) }

func ConstFrac(num, den int64) Poly {
	if den == 0 {
		panic("poly: zero denominator")
	}
	return Constant(new(big.Rat).SetFrac64(num, den))
}

func FromVar(v Var) Poly {
	var m monomial
	m[v] = 1
	p := newPoly()
	p.addTerm(m, big.NewRat(1, 1))
	return p.normalize()
}

// Monomial builds c * x^ex * y^ey * z^ez * w^ew.
func Monomial(c *big.Rat, ex, ey, ez, ew int) Poly {
	var (
		m = monomial{uint8(ex), uint8(ey), uint8(ez), uint8(ew)}
		p = newPoly()
	)
	if ex < 0 || ey < 0 || ez < 0 || ew < 0 {
		panic("poly: negative exponent")
	}
	p.addTerm(m, c)
	return p.normalize()
}

func newPoly() Poly { return Poly{terms: make(map[monomial]*big.Rat)} }

func (p Poly) addTerm(m monomial, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	if acc, present := p.terms[m]; present {
		acc.Add(acc, c)
	} else {
		p.terms[m] = new(big.Rat).Set(c)
	}
}

// normalize drops cancelled terms so that term count reflects the true
// support of the polynomial
func (p Poly) normalize() Poly {
	for m, c := range p.terms {
		if c.Sign() == 0 {
			delete(p.terms, m)
		}
	}
	return p
}

func (p Poly) IsZero() bool { return len(p.terms) == 0 }

func (p Poly) NumTerms() int { return len(p.terms) }

func (p Poly) Add(q Poly) (r Poly) {
	r = newPoly()
	for m, c := range p.terms {
		r.addTerm(m, c)
	}
	for m, c := range q.terms {
		r.addTerm(m, c)
	}
	return r.normalize()
}

func (p Poly) Neg() (r Poly) {
	r = newPoly()
	for m, c := range p.terms {
		r.terms[m] = new(big.Rat).Neg(c)
	}
	return
}

func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

func (p Poly) Scale(c *big.Rat) (r Poly) {
	r = newPoly()
	for m, pc := range p.terms {
		r.addTerm(m, new(big.Rat).Mul(pc, c))
	}
	return r.normalize()
}

func (p Poly) Mul(q Poly) (r Poly) {
	r = newPoly()
	for pm, pc := range p.terms {
		for qm, qc := range q.terms {
			var m monomial
			for v := 0; v < int(nVars); v++ {
				e := int(pm[v]) + int(qm[v])
				if e > 255 {
					panic("poly: exponent overflow")
				}
				m[v] = uint8(e)
			}
			r.addTerm(m, new(big.Rat).Mul(pc, qc))
		}
	}
	return r.normalize()
}

// Pow expands p^n by repeated multiplication. Pow(0) is the constant 1.
func (p Poly) Pow(n int) (r Poly) {
	if n < 0 {
		panic("poly: negative power")
	}
	r = ConstInt(1)
	for i := 0; i < n; i++ {
		r = r.Mul(p)
	}
	return
}

// Degree returns the highest exponent of v appearing in p, 0 for a
// polynomial with no dependence on v (including the zero polynomial).
func (p Poly) Degree(v Var) (d int) {
	for m := range p.terms {
		if int(m[v]) > d {
			d = int(m[v])
		}
	}
	return
}

func (p Poly) MaxDegree() (d int) {
	for m := range p.terms {
		var tot int
		for v := 0; v < int(nVars); v++ {
			tot += int(m[v])
		}
		if tot > d {
			d = tot
		}
	}
	return
}

func (p Poly) ContainsVar(v Var) bool {
	for m := range p.terms {
		if m[v] > 0 {
			return true
		}
	}
	return false
}

// Collect groups the terms of p by the power of v, returning the coefficient
// polynomial of each power. The coefficients have no dependence on v.
func (p Poly) Collect(v Var) (coeffs map[int]Poly) {
	coeffs = make(map[int]Poly)
	for m, c := range p.terms {
		k := int(m[v])
		mc := m
		mc[v] = 0
		q, present := coeffs[k]
		if !present {
			q = newPoly()
			coeffs[k] = q
		}
		q.addTerm(mc, c)
	}
	for k, q := range coeffs {
		coeffs[k] = q.normalize()
	}
	return
}

// SubstPowers replaces v^k by vals[k] for every term of p, walking the powers
// from highest to lowest so that a lower power never rewrites the residue of
// a higher one. vals must cover vals[0..Degree(v)]; vals[0] is unused (the
// power-zero terms carry no factor of v).
func (p Poly) SubstPowers(v Var, vals []float64) (r Poly, err error) {
	var (
		dv = p.Degree(v)
	)
	if len(vals) <= dv {
		return Zero(), fmt.Errorf("%w: degree %d in %s, %d values supplied",
			ErrMomentOrder, dv, v, len(vals))
	}
	r = newPoly()
	for k := dv; k >= 0; k-- {
		scale := big.NewRat(1, 1)
		if k > 0 {
			if scale.SetFloat64(vals[k]) == nil {
				return Zero(), fmt.Errorf("poly: substitution value for %s^%d is not finite", v, k)
			}
		}
		for m, c := range p.terms {
			if int(m[v]) != k {
				continue
			}
			mc := m
			mc[v] = 0
			r.addTerm(mc, new(big.Rat).Mul(c, scale))
		}
	}
	return r.normalize(), nil
}

// sortedMonomials returns the support in graded lexicographic order, which
// keeps String output and compiled evaluators stable across runs.
func (p Poly) sortedMonomials() (ms []monomial) {
	ms = make([]monomial, 0, len(p.terms))
	for m := range p.terms {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool {
		var ti, tj int
		for v := 0; v < int(nVars); v++ {
			ti += int(ms[i][v])
			tj += int(ms[j][v])
		}
		if ti != tj {
			return ti > tj
		}
		for v := 0; v < int(nVars); v++ {
			if ms[i][v] != ms[j][v] {
				return ms[i][v] > ms[j][v]
			}
		}
		return false
	})
	return
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, m := range p.sortedMonomials() {
		c := p.terms[m]
		if i > 0 {
			if c.Sign() >= 0 {
				sb.WriteString(" + ")
			} else {
				sb.WriteString(" - ")
			}
		} else if c.Sign() < 0 {
			sb.WriteString("-")
		}
		abs := new(big.Rat).Abs(c)
		var factors []string
		if abs.Cmp(big.NewRat(1, 1)) != 0 || m == (monomial{}) {
			factors = append(factors, abs.RatString())
		}
		for v := 0; v < int(nVars); v++ {
			switch {
			case m[v] == 1:
				factors = append(factors, varNames[v])
			case m[v] > 1:
				factors = append(factors, fmt.Sprintf("%s^%d", varNames[v], m[v]))
			}
		}
		sb.WriteString(strings.Join(factors, "*"))
	}
	return sb.String()
}
