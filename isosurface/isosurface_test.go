package isosurface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func sphereField(g Grid) (vals []float64) {
	var (
		n = g.N()
	)
	vals = make([]float64, g.NumSamples())
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				x, y, z := g.Coord(ix), g.Coord(iy), g.Coord(iz)
				vals[g.Index(ix, iy, iz)] = x*x + y*y + z*z
			}
		}
	}
	return
}

func TestGrid(t *testing.T) {
	g := Grid{Min: -1.5, Max: 1.5, Step: 0.02}
	assert.NoError(t, g.Validate())
	assert.Equal(t, 151, g.N())
	assert.InDelta(t, -1.5, g.Coord(0), 1.e-12)
	assert.InDelta(t, 1.5, g.Coord(150), 1.e-12)
	assert.Equal(t, 151*151*151, g.NumSamples())

	assert.Error(t, Grid{Min: -1, Max: 1, Step: 0}.Validate())
	assert.Error(t, Grid{Min: 1, Max: -1, Step: 0.1}.Validate())
}

func TestExtractSphere(t *testing.T) {
	var (
		g     = Grid{Min: -1.5, Max: 1.5, Step: 0.1}
		vals  = sphereField(g)
		level = 1.0 // unit sphere
	)
	m := Extract(vals, g, level)
	assert.False(t, m.IsEmpty())
	assert.Equal(t, len(m.Vertices), len(m.Normals))
	for i, v := range m.Vertices {
		r := r3.Norm(v)
		// interpolated vertices sit on the unit sphere to within a cell
		assert.InDelta(t, 1.0, r, 0.01)
		// bounds invariant
		assert.True(t, v.X >= g.Min && v.X <= g.Max)
		assert.True(t, v.Y >= g.Min && v.Y <= g.Max)
		assert.True(t, v.Z >= g.Min && v.Z <= g.Max)
		// normals are unit length and point down-field (toward the center
		// for a radially increasing field)
		assert.InDelta(t, 1.0, r3.Norm(m.Normals[i]), 1.e-12)
		assert.Less(t, r3.Dot(m.Normals[i], v), 0.0)
	}
	// faces index valid, deduplicated vertices are shared
	seen := make(map[int32]bool)
	for _, f := range m.Faces {
		for _, vi := range f {
			assert.True(t, int(vi) < len(m.Vertices))
			seen[vi] = true
		}
	}
	assert.Equal(t, len(m.Vertices), len(seen))
}

func TestExtractLevelOrdering(t *testing.T) {
	// nested spheres: a higher level encloses more volume for this field, so
	// mean vertex radius grows with the level
	var (
		g    = Grid{Min: -1.5, Max: 1.5, Step: 0.1}
		vals = sphereField(g)
	)
	meanRadius := func(m Mesh) (r float64) {
		for _, v := range m.Vertices {
			r += r3.Norm(v)
		}
		return r / float64(len(m.Vertices))
	}
	inner := Extract(vals, g, 0.5)
	outer := Extract(vals, g, 1.5)
	assert.False(t, inner.IsEmpty())
	assert.False(t, outer.IsEmpty())
	assert.Less(t, meanRadius(inner), meanRadius(outer))
}

func TestExtractSkipsNaN(t *testing.T) {
	var (
		g    = Grid{Min: -1.5, Max: 1.5, Step: 0.1}
		vals = sphereField(g)
	)
	// poison one octant; extraction must drop its cubes and carry on
	n := g.N()
	for ix := n / 2; ix < n; ix++ {
		for iy := n / 2; iy < n; iy++ {
			for iz := n / 2; iz < n; iz++ {
				vals[g.Index(ix, iy, iz)] = math.NaN()
			}
		}
	}
	m := Extract(vals, g, 1.0)
	assert.False(t, m.IsEmpty())
	for _, v := range m.Vertices {
		assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z))
	}
	full := Extract(sphereField(g), g, 1.0)
	assert.Less(t, len(m.Faces), len(full.Faces))
}

func TestExtractLevels(t *testing.T) {
	var (
		g      = Grid{Min: -1.5, Max: 1.5, Step: 0.1}
		vals   = sphereField(g)
		levels = []float64{0.25, 0.5, 1.0, 1.5}
	)
	meshes := ExtractLevels(vals, g, levels, 2)
	assert.Len(t, meshes, len(levels))
	for i, m := range meshes {
		serial := Extract(vals, g, levels[i])
		assert.Equal(t, serial.Vertices, m.Vertices)
		assert.Equal(t, serial.Faces, m.Faces)
	}
	assert.Empty(t, ExtractLevels(vals, g, nil, 2))
}
