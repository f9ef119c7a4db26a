package pick

import (
	"fmt"

	"github.com/seqsense/pcdpicker/scene"
	"github.com/seqsense/pcgol/mat"
)

// Result is a resolved pick. A nil *Result means nothing is under the pointer.
type Result struct {
	// Object is the reported node, after select parent substitution.
	Object *scene.Node
	// Point is the hit position in world coordinates.
	Point mat.Vec3
	// Distance is the world distance from the ray origin to Point.
	Distance float32
	// Index is the triangle index for mesh hits and the point index
	// for point cloud hits.
	Index int
}

func (r *Result) String() string {
	if r == nil {
		return "none"
	}
	return fmt.Sprintf("%s %s %s distance=%0.3f index=%d",
		r.Object.Type, r.Object.Name, r.Point, r.Distance, r.Index)
}
