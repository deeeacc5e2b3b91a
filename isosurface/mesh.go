package isosurface

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangulated isosurface: shared vertices, per-vertex normals and
// 0-based triangular faces.
type Mesh struct {
	Vertices []r3.Vec
	Normals  []r3.Vec
	Faces    [][3]int32
}

func (m Mesh) IsEmpty() bool { return len(m.Faces) == 0 }

// edgeKey identifies a lattice edge globally: origin node plus axis. Shared
// crossing vertices are deduplicated through it so the mesh is watertight.
type edgeKey struct {
	ix, iy, iz int32
	axis       int8
}

// Extract runs marching cubes over the sampled field vals (laid out per
// Grid.Index) at the given level. Cubes touching a NaN sample contribute no
// geometry, which makes undefined field points fall outside every threshold.
func Extract(vals []float64, g Grid, level float64) (m Mesh) {
	var (
		n       = g.N()
		vertOf  = make(map[edgeKey]int32)
		corners [8]float64
	)
	interpVertex := func(ix, iy, iz, e int) int32 {
		d := edgeDelta[e]
		key := edgeKey{int32(ix + d[0]), int32(iy + d[1]), int32(iz + d[2]), int8(d[3])}
		if vi, present := vertOf[key]; present {
			return vi
		}
		var (
			c0     = edgeCorners[e][0]
			c1     = edgeCorners[e][1]
			p0     = cornerPos(g, ix, iy, iz, c0)
			p1     = cornerPos(g, ix, iy, iz, c1)
			v0, v1 = corners[c0], corners[c1]
			t      = 0.5
		)
		if v1 != v0 {
			t = (level - v0) / (v1 - v0)
		}
		v := r3.Add(p0, r3.Scale(t, r3.Sub(p1, p0)))
		nrm := r3.Add(r3.Scale(1-t, gradientAt(vals, g, ix+cornerOffset[c0][0], iy+cornerOffset[c0][1], iz+cornerOffset[c0][2])),
			r3.Scale(t, gradientAt(vals, g, ix+cornerOffset[c1][0], iy+cornerOffset[c1][1], iz+cornerOffset[c1][2])))
		vi := int32(len(m.Vertices))
		m.Vertices = append(m.Vertices, v)
		m.Normals = append(m.Normals, normalize(r3.Scale(-1, nrm)))
		vertOf[key] = vi
		return vi
	}
	for ix := 0; ix < n-1; ix++ {
		for iy := 0; iy < n-1; iy++ {
			for iz := 0; iz < n-1; iz++ {
				var (
					cubeIndex int
					skip      bool
				)
				for c := 0; c < 8; c++ {
					o := cornerOffset[c]
					corners[c] = vals[g.Index(ix+o[0], iy+o[1], iz+o[2])]
					if math.IsNaN(corners[c]) {
						skip = true
						break
					}
					if corners[c] < level {
						cubeIndex |= 1 << c
					}
				}
				if skip || edgeTable[cubeIndex] == 0 {
					continue
				}
				var edgeVerts [12]int32
				for e := 0; e < 12; e++ {
					if edgeTable[cubeIndex]&(1<<e) != 0 {
						edgeVerts[e] = interpVertex(ix, iy, iz, e)
					}
				}
				row := triTable[cubeIndex]
				for i := 0; row[i] != -1; i += 3 {
					m.Faces = append(m.Faces, [3]int32{
						edgeVerts[row[i]],
						edgeVerts[row[i+1]],
						edgeVerts[row[i+2]],
					})
				}
			}
		}
	}
	return
}

var cornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

func cornerPos(g Grid, ix, iy, iz, c int) r3.Vec {
	o := cornerOffset[c]
	return r3.Vec{X: g.Coord(ix + o[0]), Y: g.Coord(iy + o[1]), Z: g.Coord(iz + o[2])}
}

// gradientAt is the central-difference field gradient at a lattice node,
// one-sided at the boundary. NaN neighbors fall back to the node value so an
// isolated undefined sample does not poison adjacent normals.
func gradientAt(vals []float64, g Grid, ix, iy, iz int) (grad r3.Vec) {
	var (
		n = g.N()
		d = func(i, j, k int) float64 { return vals[g.Index(i, j, k)] }
	)
	diff := func(lo, hi, span float64) float64 {
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return 0
		}
		return (hi - lo) / span
	}
	axis := func(i int) (lo, hi int, span float64) {
		lo, hi, span = i-1, i+1, 2*g.Step
		if lo < 0 {
			lo, span = i, g.Step
		}
		if hi > n-1 {
			hi, span = i, g.Step
		}
		return
	}
	xlo, xhi, xs := axis(ix)
	ylo, yhi, ys := axis(iy)
	zlo, zhi, zs := axis(iz)
	grad.X = diff(d(xlo, iy, iz), d(xhi, iy, iz), xs)
	grad.Y = diff(d(ix, ylo, iz), d(ix, yhi, iz), ys)
	grad.Z = diff(d(ix, iy, zlo), d(ix, iy, zhi), zs)
	return
}

func normalize(v r3.Vec) r3.Vec {
	nrm := r3.Norm(v)
	if nrm == 0 {
		return r3.Vec{Z: 1}
	}
	return r3.Scale(1/nrm, v)
}

// ExtractLevels fans the independent per-level extractions over a worker
// pool; vals is shared read-only. nWorkers <= 0 uses GOMAXPROCS. Results are
// indexed by level position.
func ExtractLevels(vals []float64, g Grid, levels []float64, nWorkers int) (meshes []Mesh) {
	if len(levels) == 0 {
		return
	}
	if nWorkers <= 0 {
		nWorkers = runtime.GOMAXPROCS(0)
	}
	if nWorkers > len(levels) {
		nWorkers = len(levels)
	}
	var (
		wg   sync.WaitGroup
		jobs = make(chan int)
	)
	meshes = make([]Mesh, len(levels))
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				meshes[i] = Extract(vals, g, levels[i])
			}
		}()
	}
	for i := range levels {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return
}
