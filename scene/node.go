// Package scene provides the scene graph queried by the picker.
package scene

import (
	"github.com/google/uuid"
	"github.com/seqsense/pcdpicker/bvh"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Type tags the kind of a node.
type Type int

const (
	TypeScene Type = iota
	TypeGroup
	TypeMesh
	TypePoints
)

func (t Type) String() string {
	switch t {
	case TypeScene:
		return "scene"
	case TypeGroup:
		return "group"
	case TypeMesh:
		return "mesh"
	case TypePoints:
		return "points"
	default:
		return "unknown"
	}
}

// Meta holds the picking attributes of a node.
type Meta struct {
	// Selectable is false for nodes which must never be reported.
	Selectable bool
	// PointCloud marks the node as a point cloud root.
	// Its subtree is tested by nearest point search instead of raycasting.
	PointCloud bool
	// SelectParent, if set, is reported in place of the node.
	SelectParent *Node
}

// Rotation is an axis-angle rotation. Angle is in radians.
type Rotation struct {
	Axis  mat.Vec3
	Angle float32
}

// Matrix returns the rotation matrix.
func (r Rotation) Matrix() mat.Mat4 {
	if r.Angle == 0 || r.Axis.NormSq() == 0 {
		return mat.Scale(1, 1, 1)
	}
	a := r.Axis.Normalized()
	return mat.Rotate(a[0], a[1], a[2], r.Angle)
}

// Node is an element of the scene graph.
type Node struct {
	ID      uuid.UUID
	Name    string
	Type    Type
	Visible bool
	Meta    Meta

	Position mat.Vec3
	Rotation Rotation
	Scale    mat.Vec3

	Mesh *Mesh

	Points *pc.PointCloud
	// Index is the hierarchy over Points. Nodes with an Index are searched
	// by the point cloud hit test.
	Index *bvh.BVH
	// PointSize is the rendered point size in pixels.
	PointSize float32

	parent   *Node
	children []*Node
}

// NewNode returns a visible, selectable node with unit scale.
func NewNode(typ Type, name string) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    name,
		Type:    typ,
		Visible: true,
		Meta: Meta{
			Selectable: true,
		},
		Scale: mat.Vec3{1, 1, 1},
	}
}

// NewScene returns an empty scene root.
func NewScene() *Node {
	return NewNode(TypeScene, "")
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add appends children. A child attached elsewhere is detached first.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches the child. It returns false if c is not a child of n.
func (n *Node) Remove(c *Node) bool {
	for i, cc := range n.children {
		if cc == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() mat.Mat4 {
	return mat.Translate(n.Position[0], n.Position[1], n.Position[2]).
		MulAffine(n.Rotation.Matrix()).
		MulAffine(mat.Scale(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// WorldMatrix returns the transform from the node's local space to the root.
func (n *Node) WorldMatrix() mat.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().MulAffine(m)
	}
	return m
}

// Traverse calls fn for n and all descendants, parents first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is like Traverse but skips invisible nodes and their subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// FindByName returns the first node in traversal order with the name.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.FindByName(name); f != nil {
			return f
		}
	}
	return nil
}

// FindByID returns the node with the id or nil.
func (n *Node) FindByID(id uuid.UUID) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if f := c.FindByID(id); f != nil {
			return f
		}
	}
	return nil
}

// SetPoints attaches the point cloud and builds its index.
func (n *Node) SetPoints(pp *pc.PointCloud, opts ...bvh.Option) error {
	if pp.Points == 0 || len(pp.Data) == 0 {
		n.Points = pp
		n.Index = bvh.New(pc.Vec3Slice{}, opts...)
		return nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return err
	}
	n.Points = pp
	n.Index = bvh.New(it, opts...)
	return nil
}

// SetPointSlice attaches bare positions and builds their index.
func (n *Node) SetPointSlice(vs []mat.Vec3, opts ...bvh.Option) error {
	pp, err := NewPointCloud(vs)
	if err != nil {
		return err
	}
	return n.SetPoints(pp, opts...)
}
