package pick

import (
	"math"

	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcdpicker/scene"
	"github.com/seqsense/pcgol/mat"
)

// MinPointScale is the smallest pick radius of a point in world units.
const MinPointScale = 0.007

// Threshold returns the pick radius of a point in the local space of a
// point cloud scaled by scale.
// pointSize is the rendered size in pixels. Non-uniform scale is averaged.
func Threshold(pointSize, devicePixelRatio float32, scale mat.Vec3) float32 {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	s := pointSize / devicePixelRatio
	if s < MinPointScale {
		s = MinPointScale
	}
	avg := (scale[0] + scale[1] + scale[2]) / 3
	if avg <= 0 {
		return s
	}
	return s / avg
}

// traversal holds the state of a nearest point search along a ray.
type traversal struct {
	ray         geom.Ray
	threshold   float32
	thresholdSq float32

	closest float32
	point   mat.Vec3
	index   int
}

func newTraversal(r geom.Ray, threshold float32) *traversal {
	return &traversal{
		ray:         r,
		threshold:   threshold,
		thresholdSq: threshold * threshold,
		closest:     float32(math.Inf(1)),
		index:       -1,
	}
}

func (t *traversal) Score(box geom.Box) float32 {
	return box.DistanceToPoint(t.ray.Origin)
}

func (t *traversal) Descend(box geom.Box, isLeaf bool, score float32) bool {
	if score > t.closest {
		return false
	}
	return t.ray.IntersectsBox(box.Expand(t.threshold))
}

func (t *traversal) VisitPoint(p mat.Vec3, index int) {
	if t.ray.DistanceSqToPoint(p) >= t.thresholdSq {
		return
	}
	if d := p.Sub(t.ray.Origin).Norm(); d < t.closest {
		t.closest = d
		t.point = p
		t.index = index
	}
}

func (t *traversal) found() bool {
	return t.index >= 0
}

// indexNode returns the first node in the subtree of n carrying a point index.
func indexNode(n *scene.Node) *scene.Node {
	if n.Index != nil {
		return n
	}
	for _, c := range n.Children() {
		if f := indexNode(c); f != nil {
			return f
		}
	}
	return nil
}

// IntersectPointCloud returns the point nearest to the ray origin among
// the points within the pick radius of r.
// The first point cloud candidate is searched. A cloud without index
// gives no hit.
func IntersectPointCloud(r geom.Ray, candidates []*scene.Node, devicePixelRatio float32) *Result {
	var cloud *scene.Node
	for _, n := range candidates {
		if n.Meta.PointCloud {
			cloud = n
			break
		}
	}
	if cloud == nil {
		return nil
	}
	in := indexNode(cloud)
	if in == nil {
		return nil
	}

	world := in.WorldMatrix()
	local := r.ApplyMatrix4(world.InvAffine())

	size := cloud.PointSize
	if size == 0 {
		size = in.PointSize
	}
	t := newTraversal(local, Threshold(size, devicePixelRatio, cloud.Scale))
	in.Index.Shapecast(t)
	if !t.found() {
		return nil
	}

	p := world.TransformAffine(t.point)
	return &Result{
		Object:   cloud,
		Point:    p,
		Distance: p.Sub(r.Origin).Norm(),
		Index:    t.index,
	}
}
