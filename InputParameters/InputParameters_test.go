package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	rp := Defaults()
	err := rp.Parse([]byte(`
Title: test run
Mean: 0.1
Variance: 0.04
GridStep: 0.05
RiskLevels: [0.1, 0.5]
OutputDir: out
`))
	assert.NoError(t, err)
	assert.Equal(t, "test run", rp.Title)
	assert.Equal(t, 0.1, rp.Mean)
	assert.Equal(t, 0.04, rp.Variance)
	assert.Equal(t, 0.05, rp.GridStep)
	assert.Equal(t, []float64{0.1, 0.5}, rp.RiskLevels)
	// Unset keys keep their defaults
	assert.Equal(t, -1.5, rp.GridMin)
	assert.Equal(t, 1.5, rp.GridMax)
	assert.NoError(t, rp.Validate())
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*RiskParameters)
	}{
		{"zero variance", func(rp *RiskParameters) { rp.Variance = 0 }},
		{"negative step", func(rp *RiskParameters) { rp.GridStep = -0.02 }},
		{"inverted bounds", func(rp *RiskParameters) { rp.GridMin, rp.GridMax = 1.5, -1.5 }},
		{"no levels", func(rp *RiskParameters) { rp.RiskLevels = nil }},
		{"level out of range", func(rp *RiskParameters) { rp.RiskLevels = []float64{0.5, 1.0} }},
	} {
		rp := Defaults()
		tc.mutate(rp)
		assert.Error(t, rp.Validate(), tc.name)
	}
	assert.NoError(t, Defaults().Validate())
}
