// Package mesh builds the procedural geometry the stage is made of: unit
// cubes for steps, walls and frames, and a UV sphere for the ball. Vertices
// are interleaved position+normal, indexed, ready for upload.
package mesh

import (
	gomath "math"
)

// Mesh is indexed triangle geometry with interleaved [x y z nx ny nz]
// vertices.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexStride is the number of floats per vertex.
const VertexStride = 6

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Cube returns a unit cube centered at the origin with per-face normals.
// Scale it with the model matrix to make steps, walls, frames and the floor.
func Cube() *Mesh {
	// Six faces, four vertices each. Normal per face.
	faces := [6]struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	m := &Mesh{
		Vertices: make([]float32, 0, 6*4*VertexStride),
		Indices:  make([]uint32, 0, 6*6),
	}
	for _, f := range faces {
		base := uint32(m.VertexCount())
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices,
				c[0], c[1], c[2],
				f.normal[0], f.normal[1], f.normal[2],
			)
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m
}

// UVSphere returns a unit-radius sphere centered at the origin with smooth
// normals. rings and sectors must both be at least 3.
func UVSphere(rings, sectors int) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if sectors < 3 {
		sectors = 3
	}

	m := &Mesh{
		Vertices: make([]float32, 0, (rings+1)*(sectors+1)*VertexStride),
		Indices:  make([]uint32, 0, rings*sectors*6),
	}

	for r := 0; r <= rings; r++ {
		phi := gomath.Pi * float64(r) / float64(rings)
		y := float32(gomath.Cos(phi))
		ringRadius := float32(gomath.Sin(phi))

		for s := 0; s <= sectors; s++ {
			theta := 2 * gomath.Pi * float64(s) / float64(sectors)
			x := ringRadius * float32(gomath.Cos(theta))
			z := ringRadius * float32(gomath.Sin(theta))

			// Unit sphere: position doubles as the normal.
			m.Vertices = append(m.Vertices, x, y, z, x, y, z)
		}
	}

	stride := uint32(sectors + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			m.Indices = append(m.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return m
}
