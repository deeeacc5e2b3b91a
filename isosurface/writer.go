package isosurface

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry files are little-endian binary, length-prefixed:
//
//	vertices_faces_<n>.bin: int64 nDims (3), int64 nVerts, nVerts*3 float64,
//	                        int64 nFaces, nFaces*3 int64 (0-based indices)
//	normal_<n>.bin:         int64 nVerts, nVerts*3 float64

func GeometryFileName(dir string, level int) string {
	return filepath.Join(dir, fmt.Sprintf("vertices_faces_%d.bin", level))
}

func NormalFileName(dir string, level int) string {
	return filepath.Join(dir, fmt.Sprintf("normal_%d.bin", level))
}

// WriteLevel persists one extracted isosurface under dir, creating dir if
// absent. The two files of a level succeed or fail together from the
// caller's point of view - an error skips the level, not the run.
func WriteLevel(dir string, level int, m Mesh) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err = writeGeometry(GeometryFileName(dir, level), m); err != nil {
		return fmt.Errorf("level %d geometry: %w", level, err)
	}
	if err = writeNormals(NormalFileName(dir, level), m); err != nil {
		return fmt.Errorf("level %d normals: %w", level, err)
	}
	return
}

func writeGeometry(fileName string, m Mesh) (err error) {
	var (
		file *os.File
	)
	file, err = os.Create(fileName)
	if err != nil {
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)

	xyz := make([]float64, 3*len(m.Vertices))
	for i, v := range m.Vertices {
		xyz[3*i], xyz[3*i+1], xyz[3*i+2] = v.X, v.Y, v.Z
	}
	faceVerts := make([]int64, 3*len(m.Faces))
	for i, f := range m.Faces {
		faceVerts[3*i] = int64(f[0])
		faceVerts[3*i+1] = int64(f[1])
		faceVerts[3*i+2] = int64(f[2])
	}
	nDimensions := int64(3)
	for _, chunk := range []interface{}{
		nDimensions,
		int64(len(m.Vertices)), xyz,
		int64(len(m.Faces)), faceVerts,
	} {
		if err = binary.Write(w, binary.LittleEndian, chunk); err != nil {
			return
		}
	}
	return w.Flush()
}

func writeNormals(fileName string, m Mesh) (err error) {
	var (
		file *os.File
	)
	file, err = os.Create(fileName)
	if err != nil {
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)

	xyz := make([]float64, 3*len(m.Normals))
	for i, v := range m.Normals {
		xyz[3*i], xyz[3*i+1], xyz[3*i+2] = v.X, v.Y, v.Z
	}
	if err = binary.Write(w, binary.LittleEndian, int64(len(m.Normals))); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, xyz); err != nil {
		return
	}
	return w.Flush()
}

// ReadGeometry loads a vertices_faces file back; the round trip is used by
// downstream consumers and the writer tests.
func ReadGeometry(fileName string) (m Mesh, err error) {
	var (
		file *os.File
		nDim int64
	)
	file, err = os.Open(fileName)
	if err != nil {
		return
	}
	defer file.Close()
	r := bufio.NewReader(file)

	if err = binary.Read(r, binary.LittleEndian, &nDim); err != nil {
		return
	}
	if nDim != 3 {
		return m, fmt.Errorf("isosurface: unexpected dimension tag %d in %s", nDim, fileName)
	}
	var nVerts int64
	if err = binary.Read(r, binary.LittleEndian, &nVerts); err != nil {
		return
	}
	xyz := make([]float64, 3*nVerts)
	if err = binary.Read(r, binary.LittleEndian, xyz); err != nil {
		return
	}
	m.Vertices = make([]r3.Vec, nVerts)
	for i := range m.Vertices {
		m.Vertices[i] = r3.Vec{X: xyz[3*i], Y: xyz[3*i+1], Z: xyz[3*i+2]}
	}
	var nFaces int64
	if err = binary.Read(r, binary.LittleEndian, &nFaces); err != nil {
		return
	}
	faceVerts := make([]int64, 3*nFaces)
	if err = binary.Read(r, binary.LittleEndian, faceVerts); err != nil {
		return
	}
	m.Faces = make([][3]int32, nFaces)
	for i := range m.Faces {
		m.Faces[i] = [3]int32{
			int32(faceVerts[3*i]),
			int32(faceVerts[3*i+1]),
			int32(faceVerts[3*i+2]),
		}
	}
	return
}
