package obstacle

import (
	"testing"

	"github.com/hkcrc/riskcontour/poly"
	"github.com/stretchr/testify/assert"
)

func TestHeart(t *testing.T) {
	m := Heart()
	// g is linear in w
	assert.Equal(t, 1, m.DegreeUncertain())
	// sextic in each spatial direction after expansion of the cubed shell
	assert.Equal(t, 6, m.Polynomial().Degree(poly.X))
	assert.Equal(t, 6, m.Polynomial().Degree(poly.Y))
	assert.Equal(t, 6, m.Polynomial().Degree(poly.Z))

	// At the origin the shell term is -(-1)^3 = 1 and the z^3 terms vanish,
	// so g(0,0,0,w) = 1 + w
	coeffs := m.Polynomial().Collect(poly.W)
	ev0, err := coeffs[0].Compile()
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, ev0.At(0, 0, 0), 1.e-14)
	assert.Equal(t, "1", coeffs[1].String())
}

func TestDeterministic(t *testing.T) {
	var (
		m  = Heart()
		g0 = m.Deterministic()
	)
	assert.False(t, g0.ContainsVar(poly.W))
	ev, err := g0.Compile()
	assert.NoError(t, err)
	// Origin is inside the heart (g0 > 0), the far corner outside
	assert.True(t, ev.At(0, 0, 0) > 0)
	assert.True(t, ev.At(1.4, 1.4, 1.4) < 0)
	// On the z axis at z = 0.2 the shell and both coupling terms vanish
	assert.InDelta(t, 0.0, ev.At(0, 0, 0.2), 1.e-12)
}

func TestRejectsDeterministicModel(t *testing.T) {
	_, err := New(poly.FromVar(poly.X).Pow(2).Sub(poly.ConstInt(1)))
	assert.ErrorIs(t, err, ErrNoUncertainty)
}
