// Package bvh implements a bounding volume hierarchy over point positions.
package bvh

import (
	"sort"

	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// DefaultMaxLeafPoints is the number of points a leaf holds at most
// unless WithMaxLeafPoints is given.
const DefaultMaxLeafPoints = 10

// BVH is an immutable hierarchy of axis aligned boxes.
// Each node has either two children or a range of point indices.
type BVH struct {
	ra      pc.Vec3RandomAccessor
	indices []int
	root    *node
}

type node struct {
	box         geom.Box
	left, right *node
	start, end  int
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// Option configures BVH construction.
type Option func(*options)

type options struct {
	maxLeafPoints int
}

// WithMaxLeafPoints sets the leaf size.
func WithMaxLeafPoints(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLeafPoints = n
		}
	}
}

// New builds the hierarchy over all points of ra.
// The accessor must not be modified while the BVH is in use.
func New(ra pc.Vec3RandomAccessor, opts ...Option) *BVH {
	o := &options{
		maxLeafPoints: DefaultMaxLeafPoints,
	}
	for _, opt := range opts {
		opt(o)
	}

	n := ra.Len()
	b := &BVH{
		ra:      ra,
		indices: make([]int, n),
	}
	for i := range b.indices {
		b.indices[i] = i
	}
	if n > 0 {
		b.root = b.build(0, n, o.maxLeafPoints)
	}
	return b
}

func (b *BVH) build(start, end, maxLeafPoints int) *node {
	nd := &node{
		box:   geom.EmptyBox(),
		start: start,
		end:   end,
	}
	for _, id := range b.indices[start:end] {
		nd.box = nd.box.Extend(b.ra.Vec3At(id))
	}
	if end-start <= maxLeafPoints {
		return nd
	}

	axis := nd.box.LongestAxis()
	ids := b.indices[start:end]
	sort.Slice(ids, func(i, j int) bool {
		return b.ra.Vec3At(ids[i])[axis] < b.ra.Vec3At(ids[j])[axis]
	})

	mid := start + (end-start)/2
	nd.left = b.build(start, mid, maxLeafPoints)
	nd.right = b.build(mid, end, maxLeafPoints)
	return nd
}

// Len returns the number of indexed points.
func (b *BVH) Len() int {
	return len(b.indices)
}

// Box returns the bounding box of all points.
func (b *BVH) Box() geom.Box {
	if b.root == nil {
		return geom.EmptyBox()
	}
	return b.root.box
}

// Vec3At returns the i-th point of the underlying accessor.
func (b *BVH) Vec3At(i int) mat.Vec3 {
	return b.ra.Vec3At(i)
}
