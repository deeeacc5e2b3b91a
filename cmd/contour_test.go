package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkcrc/riskcontour/InputParameters"
	"github.com/hkcrc/riskcontour/isosurface"
)

func TestRunContour(t *testing.T) {
	var (
		dir = t.TempDir()
		rp  = InputParameters.Defaults()
	)
	rp.OutputDir = dir
	rp.STLOutput = filepath.Join(dir, "heart.stl")
	err := RunContour(rp, 0)
	assert.NoError(t, err)

	// One geometry + normals pair per risk level, every vertex inside the
	// sampling cube
	for n := range rp.RiskLevels {
		m, err := isosurface.ReadGeometry(isosurface.GeometryFileName(dir, n))
		assert.NoError(t, err)
		assert.NotEmpty(t, m.Vertices)
		assert.NotEmpty(t, m.Faces)
		for _, v := range m.Vertices {
			assert.True(t, v.X >= rp.GridMin && v.X <= rp.GridMax)
			assert.True(t, v.Y >= rp.GridMin && v.Y <= rp.GridMax)
			assert.True(t, v.Z >= rp.GridMin && v.Z <= rp.GridMax)
		}
		_, err = os.Stat(isosurface.NormalFileName(dir, n))
		assert.NoError(t, err)
	}
	_, err = os.Stat(rp.STLOutput)
	assert.NoError(t, err)
}

func TestRunContourRejectsBadVariance(t *testing.T) {
	rp := InputParameters.Defaults()
	rp.OutputDir = t.TempDir()
	rp.Variance = -0.01
	assert.Error(t, RunContour(rp, 0))
}
