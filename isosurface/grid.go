// Package isosurface extracts triangulated level surfaces of a scalar field
// sampled on a regular cubic lattice, computes per-vertex normals from the
// field gradient, and persists the geometry to disk.
package isosurface

import (
	"errors"
	"fmt"
	"math"
)

var ErrGrid = errors.New("isosurface: invalid grid")

// Grid is a regular cubic lattice over [Min,Max]^3 with uniform Step on each
// axis. Samples are stored row-major with z fastest: index = (ix*N + iy)*N + iz.
type Grid struct {
	Min, Max, Step float64
}

func (g Grid) Validate() error {
	switch {
	case g.Step <= 0:
		return fmt.Errorf("%w: step %g", ErrGrid, g.Step)
	case g.Max <= g.Min:
		return fmt.Errorf("%w: bounds [%g,%g]", ErrGrid, g.Min, g.Max)
	}
	return nil
}

// N is the per-axis sample count, matching Min:Step:Max semantics (151 for
// the reference bounds of 1.5 at step 0.02).
func (g Grid) N() int {
	return int(math.Floor((g.Max-g.Min)/g.Step+1.e-9)) + 1
}

func (g Grid) Coord(i int) float64 { return g.Min + float64(i)*g.Step }

// Index returns the flat sample index of lattice node (ix, iy, iz).
func (g Grid) Index(ix, iy, iz int) int {
	n := g.N()
	return (ix*n+iy)*n + iz
}

// NumSamples is the total lattice size N^3.
func (g Grid) NumSamples() int {
	n := g.N()
	return n * n * n
}
