package poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoly(t *testing.T) {
	// Arithmetic identities
	{
		x, y := FromVar(X), FromVar(Y)
		p := x.Add(y).Pow(2) // x^2 + 2xy + y^2
		assert.Equal(t, 3, p.NumTerms())
		assert.Equal(t, 2, p.Degree(X))
		assert.Equal(t, 2, p.Degree(Y))
		assert.Equal(t, 2, p.MaxDegree())
		assert.True(t, p.Sub(p).IsZero())
		assert.Equal(t, "x^2 + 2*x*y + y^2", p.String())
	}
	// Cancellation drops terms from the support
	{
		x := FromVar(X)
		p := x.Mul(x).Sub(x.Pow(2))
		assert.True(t, p.IsZero())
		assert.Equal(t, 0, p.Degree(X))
	}
	// Exact rational coefficients survive expansion
	{
		p := ConstFrac(9, 4).Mul(FromVar(Y).Pow(2)).Pow(3)
		c, ok := p.terms[monomial{0, 6, 0, 0}]
		assert.True(t, ok)
		assert.Equal(t, 0, c.Cmp(new(big.Rat).SetFrac64(729, 64)))
	}
	// Pow(0) is 1
	{
		p := FromVar(Z).Pow(0)
		assert.Equal(t, "1", p.String())
		assert.False(t, p.ContainsVar(Z))
	}
}

func TestCollect(t *testing.T) {
	var (
		x = FromVar(X)
		w = FromVar(W)
	)
	// (x + w)^2 = x^2 + 2xw + w^2
	p := x.Add(w).Pow(2)
	coeffs := p.Collect(W)
	assert.Len(t, coeffs, 3)
	assert.Equal(t, "x^2", coeffs[0].String())
	assert.Equal(t, "2*x", coeffs[1].String())
	assert.Equal(t, "1", coeffs[2].String())
	for _, c := range coeffs {
		assert.False(t, c.ContainsVar(W))
	}
}

func TestSubstPowers(t *testing.T) {
	var (
		x = FromVar(X)
		w = FromVar(W)
	)
	// (x + w)^2 with E[w]=0.5, E[w^2]=2 -> x^2 + x + 2
	p := x.Add(w).Pow(2)
	r, err := p.SubstPowers(W, []float64{1, 0.5, 2})
	assert.NoError(t, err)
	assert.False(t, r.ContainsVar(W))
	assert.Equal(t, "x^2 + x + 2", r.String())

	// A higher power must not be rewritten as a product of lower ones:
	// w^2 with m = [1, 10, 3] is 3, not 100
	r, err = w.Pow(2).SubstPowers(W, []float64{1, 10, 3})
	assert.NoError(t, err)
	ev, err := r.Compile()
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, ev.At(0, 0, 0), 1.e-14)

	// Insufficient moment orders is an error
	_, err = p.SubstPowers(W, []float64{1, 0.5})
	assert.ErrorIs(t, err, ErrMomentOrder)
}

func TestEvaluator(t *testing.T) {
	var (
		x, y, z = FromVar(X), FromVar(Y), FromVar(Z)
	)
	p := x.Pow(3).Add(ConstFrac(1, 2).Mul(y).Mul(z)).Sub(ConstInt(4))
	ev, err := p.Compile()
	assert.NoError(t, err)
	assert.InDelta(t, 8+0.5*3*5-4, ev.At(2, 3, 5), 1.e-12)

	// Compiling with residual w must fail
	_, err = FromVar(W).Compile()
	assert.Error(t, err)
}
