// Package risk combines the propagated field moments into the normalized
// variance risk field and evaluates it over a sampling lattice.
package risk

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/hkcrc/riskcontour/isosurface"
	"github.com/hkcrc/riskcontour/poly"
)

// Field carries the compiled risk and mean evaluators:
//
//	Cons1 = (Mg2 - Mg1^2) / Mg2   (normalized variance, the risk field)
//	Cons2 = Mg1                   (mean field, diagnostic)
//
// Immutable and safe for concurrent evaluation.
type Field struct {
	mg1, mg2 poly.Evaluator
}

// NewField compiles the first and second spatial moments. The moments must
// be spatial-only; residual uncertainty is rejected by compilation.
func NewField(Mg [2]poly.Poly) (f Field, err error) {
	if f.mg1, err = Mg[0].Compile(); err != nil {
		return Field{}, fmt.Errorf("risk: first moment: %w", err)
	}
	if f.mg2, err = Mg[1].Compile(); err != nil {
		return Field{}, fmt.Errorf("risk: second moment: %w", err)
	}
	return
}

// At evaluates the risk field at a point. Where the second moment vanishes
// the field is undefined and At returns NaN; extraction treats such points
// as outside every threshold.
func (f Field) At(x, y, z float64) float64 {
	var (
		m1 = f.mg1.At(x, y, z)
		m2 = f.mg2.At(x, y, z)
	)
	if m2 == 0 {
		return math.NaN()
	}
	return (m2 - m1*m1) / m2
}

// Mean evaluates the mean field Cons2.
func (f Field) Mean(x, y, z float64) float64 {
	return f.mg1.At(x, y, z)
}

// Sample evaluates the risk field over the full lattice into a flat array
// laid out per Grid.Index. Slabs of x-planes are fanned out across workers;
// the result is read-only input for the per-level extractions. nWorkers <= 0
// uses GOMAXPROCS.
func (f Field) Sample(g isosurface.Grid, nWorkers int) (vals []float64, err error) {
	if err = g.Validate(); err != nil {
		return nil, err
	}
	var (
		n  = g.N()
		wg sync.WaitGroup
	)
	if nWorkers <= 0 {
		nWorkers = runtime.GOMAXPROCS(0)
	}
	if nWorkers > n {
		nWorkers = n
	}
	vals = make([]float64, g.NumSamples())
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for ix := w; ix < n; ix += nWorkers {
				x := g.Coord(ix)
				for iy := 0; iy < n; iy++ {
					y := g.Coord(iy)
					base := (ix*n + iy) * n
					for iz := 0; iz < n; iz++ {
						vals[base+iz] = f.At(x, y, g.Coord(iz))
					}
				}
			}
		}(w)
	}
	wg.Wait()
	return
}
