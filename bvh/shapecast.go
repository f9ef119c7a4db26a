package bvh

import (
	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcgol/mat"
)

// Visitor drives Shapecast.
//
// Score ranks a box; children of a node are visited in ascending score.
// Descend decides whether the box is entered. VisitPoint is called for
// each point of an entered leaf with the point's accessor index.
type Visitor interface {
	Score(box geom.Box) float32
	Descend(box geom.Box, isLeaf bool, score float32) bool
	VisitPoint(p mat.Vec3, index int)
}

// Shapecast traverses the hierarchy best first.
// Descend is re-evaluated for each child after its lower scored sibling
// is finished, so a visitor can prune by the state collected so far.
func (b *BVH) Shapecast(v Visitor) {
	if b.root == nil {
		return
	}
	b.visit(v, b.root, v.Score(b.root.box))
}

func (b *BVH) visit(v Visitor, nd *node, score float32) {
	if !v.Descend(nd.box, nd.isLeaf(), score) {
		return
	}
	if nd.isLeaf() {
		for _, id := range b.indices[nd.start:nd.end] {
			v.VisitPoint(b.ra.Vec3At(id), id)
		}
		return
	}

	first, second := nd.left, nd.right
	s1, s2 := v.Score(first.box), v.Score(second.box)
	if s2 < s1 {
		first, second = second, first
		s1, s2 = s2, s1
	}
	b.visit(v, first, s1)
	b.visit(v, second, s2)
}
