package moment

import (
	"math"
	"testing"

	"github.com/hkcrc/riskcontour/obstacle"
	"github.com/hkcrc/riskcontour/poly"
	"github.com/stretchr/testify/assert"
)

func TestGaussianMoments(t *testing.T) {
	// Central moments: mu = 0 gives E[w^k] = 0 for odd k and
	// sigma^k (k-1)!! for even k
	{
		d := Gaussian{Mean: 0, Variance: 0.25}
		m, err := d.Moments(6)
		assert.NoError(t, err)
		assert.InDelta(t, 1.0, m[0], 1.e-9)
		assert.InDelta(t, 0.0, m[1], 1.e-9)
		assert.InDelta(t, 0.25, m[2], 1.e-9)
		assert.InDelta(t, 0.0, m[3], 1.e-9)
		assert.InDelta(t, 3*0.25*0.25, m[4], 1.e-9)
		assert.InDelta(t, 0.0, m[5], 1.e-9)
		assert.InDelta(t, 15*math.Pow(0.25, 3), m[6], 1.e-9)
	}
	// Noncentral: E[w] = mu, E[w^2] = mu^2 + sigma^2,
	// E[w^3] = mu^3 + 3 mu sigma^2
	{
		d := Gaussian{Mean: 0.05, Variance: 0.01}
		m, err := d.Moments(3)
		assert.NoError(t, err)
		assert.InDelta(t, 0.05, m[1], 1.e-12)
		assert.InDelta(t, 0.05*0.05+0.01, m[2], 1.e-12)
		assert.InDelta(t, math.Pow(0.05, 3)+3*0.05*0.01, m[3], 1.e-12)
	}
	// m[0] = 1 across a parameter sweep
	{
		for _, mu := range []float64{-2, -0.3, 0, 0.05, 1.7} {
			for _, v := range []float64{1.e-4, 0.01, 1, 25} {
				m, err := Gaussian{Mean: mu, Variance: v}.Moments(4)
				assert.NoError(t, err)
				assert.InDelta(t, 1.0, m[0], 1.e-9)
			}
		}
	}
}

func TestGaussianMomentsVarianceGuard(t *testing.T) {
	_, err := Gaussian{Mean: 0, Variance: 0}.Moments(2)
	assert.ErrorIs(t, err, ErrVariance)
	_, err = Gaussian{Mean: 0, Variance: -1}.Moments(2)
	assert.ErrorIs(t, err, ErrVariance)
}

func TestPropagate(t *testing.T) {
	var (
		heart = obstacle.Heart()
		d     = Gaussian{Mean: 0.05, Variance: 0.01}
	)
	m, err := d.Moments(2 * heart.DegreeUncertain())
	assert.NoError(t, err)
	Mg, err := Propagate(heart, m)
	assert.NoError(t, err)

	// The propagated moments are spatial-only
	assert.False(t, Mg[0].ContainsVar(poly.W))
	assert.False(t, Mg[1].ContainsVar(poly.W))

	// g(0,0,0,w) = 1 + w, so Mg1(0) = 1 + mu and Mg2(0) = E[(1+w)^2]
	ev1, err := Mg[0].Compile()
	assert.NoError(t, err)
	ev2, err := Mg[1].Compile()
	assert.NoError(t, err)
	assert.InDelta(t, 1+0.05, ev1.At(0, 0, 0), 1.e-12)
	assert.InDelta(t, 1+2*0.05+0.05*0.05+0.01, ev2.At(0, 0, 0), 1.e-12)
}

func TestPropagateMomentOrderGuard(t *testing.T) {
	_, err := Propagate(obstacle.Heart(), []float64{1, 0.05})
	assert.ErrorIs(t, err, ErrMomentOrder)
}
