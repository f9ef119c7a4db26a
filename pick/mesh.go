package pick

import (
	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcdpicker/scene"
)

// IntersectMeshes returns the nearest mesh hit among the candidates.
// Point cloud nodes and nodes without a mesh are ignored; children are
// not visited since candidates already list them.
func IntersectMeshes(r geom.Ray, candidates []*scene.Node) *Result {
	var best *Result
	for _, n := range candidates {
		if n.Meta.PointCloud || n.Mesh == nil {
			continue
		}
		world := n.WorldMatrix()
		local := r.ApplyMatrix4(world.InvAffine())
		t, tri, ok := n.Mesh.Raycast(local)
		if !ok {
			continue
		}
		p := world.TransformAffine(local.At(t))
		d := p.Sub(r.Origin).Norm()
		if best == nil || d < best.Distance {
			best = &Result{
				Object:   n,
				Point:    p,
				Distance: d,
				Index:    tri,
			}
		}
	}
	return best
}
