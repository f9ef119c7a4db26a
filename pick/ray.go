package pick

import (
	"github.com/seqsense/pcdpicker/geom"
	"github.com/seqsense/pcdpicker/input"
	"github.com/seqsense/pcdpicker/scene"
	"github.com/seqsense/pcgol/mat"
)

// NDC is a position in normalized device coordinates.
// Both axes span [-1, 1] over the viewport with Y up.
type NDC struct {
	X, Y float32
}

// PointerNDC converts the client position of e into NDC of the rect.
// It returns false if the rect has no area.
func PointerNDC(e input.PointerEvent, r input.Rect) (NDC, bool) {
	if r.Empty() {
		return NDC{}, false
	}
	return NDC{
		X: (e.ClientX-r.Left)/r.Width*2 - 1,
		Y: -(e.ClientY-r.Top)/r.Height*2 + 1,
	}, true
}

// RayFromCamera returns the world space ray through ndc.
func RayFromCamera(ndc NDC, cam *scene.Camera) geom.Ray {
	inv := cam.Projection.Mul(cam.View).Inv()
	near := inv.Transform(mat.NewVec3(ndc.X, ndc.Y, -1))

	switch cam.Type {
	case scene.ProjectionOrthographic:
		far := inv.Transform(mat.NewVec3(ndc.X, ndc.Y, 1))
		return geom.NewRay(near, far.Sub(near))
	default:
		origin := cam.View.InvAffine().TransformAffine(mat.NewVec3(0, 0, 0))
		return geom.NewRay(origin, near.Sub(origin))
	}
}
