package scene

import (
	"errors"

	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcgol/mat"
)

var errIndexRange = errors.New("triangle index out of range")
var errIndexCount = errors.New("number of indices must be a multiple of 3")

// Mesh is triangle geometry in the node's local space.
// Without Indices, consecutive vertex triplets form the triangles.
type Mesh struct {
	Vertices []mat.Vec3
	Indices  []int
	Side     geom.Side
}

// Validate checks the index buffer.
func (m *Mesh) Validate() error {
	if m.Indices == nil {
		if len(m.Vertices)%3 != 0 {
			return errIndexCount
		}
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return errIndexCount
	}
	for _, id := range m.Indices {
		if id < 0 || id >= len(m.Vertices) {
			return errIndexRange
		}
	}
	return nil
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	if m.Indices == nil {
		return len(m.Vertices) / 3
	}
	return len(m.Indices) / 3
}

// Triangle returns the vertices of the i-th triangle.
func (m *Mesh) Triangle(i int) (a, b, c mat.Vec3) {
	if m.Indices == nil {
		return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
	}
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds returns the bounding box of the vertices.
func (m *Mesh) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Raycast returns the nearest hit distance along r and the index of the hit triangle.
// r must be in the mesh's local space.
func (m *Mesh) Raycast(r geom.Ray) (float32, int, bool) {
	if !r.IntersectsBox(m.Bounds()) {
		return 0, -1, false
	}
	var tMin float32
	tri := -1
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Triangle(i)
		t, ok := r.IntersectTriangle(a, b, c, m.Side)
		if ok && (tri < 0 || t < tMin) {
			tMin = t
			tri = i
		}
	}
	return tMin, tri, tri >= 0
}

// NewBoxMesh returns an axis aligned box centered at the origin.
// Faces are wound counter-clockwise seen from outside.
func NewBoxMesh(width, height, depth float32) *Mesh {
	x, y, z := width/2, height/2, depth/2
	faces := [6][4]mat.Vec3{
		{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}},
		{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}},
		{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}},
		{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}},
		{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}},
		{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}},
	}
	m := &Mesh{
		Vertices: make([]mat.Vec3, 0, 24),
		Indices:  make([]int, 0, 36),
	}
	for _, f := range faces {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, f[:]...)
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m
}

// NewPlaneMesh returns a width x height rectangle on the XY plane facing +Z.
func NewPlaneMesh(width, height float32) *Mesh {
	x, y := width/2, height/2
	return &Mesh{
		Vertices: []mat.Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}},
		Indices:  []int{0, 1, 2, 0, 2, 3},
	}
}
