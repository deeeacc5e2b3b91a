package isosurface

import (
	"bufio"
	"encoding/binary"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// WriteSTL exports a mesh as binary STL (80-byte header, uint32 triangle
// count, then per triangle: facet normal, three vertices, uint16 attribute).
// Facet normals are recomputed from the winding, as simulators ignore the
// per-vertex normals the level files carry.
func WriteSTL(fileName string, m Mesh) (err error) {
	var (
		file *os.File
	)
	file, err = os.Create(fileName)
	if err != nil {
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)

	var header [80]byte
	copy(header[:], "riskcontour isosurface")
	if err = binary.Write(w, binary.LittleEndian, header); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return
	}
	put := func(v r3.Vec) {
		binary.Write(w, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
	}
	for _, f := range m.Faces {
		var (
			a = m.Vertices[f[0]]
			b = m.Vertices[f[1]]
			c = m.Vertices[f[2]]
		)
		put(normalize(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))))
		put(a)
		put(b)
		put(c)
		if err = binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return
		}
	}
	return w.Flush()
}
