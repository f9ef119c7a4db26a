package scene

import (
	"github.com/seqsense/pcgol/mat"
)

type ProjectionType int

const (
	ProjectionPerspective ProjectionType = iota
	ProjectionOrthographic
)

func (p ProjectionType) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// Camera holds the matrices used to render the scene.
// View transforms world coordinates to camera coordinates.
type Camera struct {
	Type       ProjectionType
	Projection mat.Mat4
	View       mat.Mat4
}

// NewPerspectiveCamera returns a camera at the origin looking toward -Z.
// fov is the horizontal field of view in radians and aspect is width/height.
func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Type:       ProjectionPerspective,
		Projection: mat.Perspective(fov, aspect, near, far),
		View:       mat.Scale(1, 1, 1),
	}
}

// NewOrthographicCamera returns a camera at the origin looking toward -Z.
// near and far are distances in front of the camera.
func NewOrthographicCamera(left, right, top, bottom, near, far float32) *Camera {
	// Orthographic takes the clip planes as view space z.
	proj := mat.Orthographic(left, right, top, bottom, -far, -near)
	return &Camera{
		Type:       ProjectionOrthographic,
		Projection: proj,
		View:       mat.Scale(1, 1, 1),
	}
}

// LookAt places the camera at eye facing target.
func (c *Camera) LookAt(eye, target, up mat.Vec3) {
	back := eye.Sub(target).Normalized()
	right := up.Cross(back).Normalized()
	upOrtho := back.Cross(right)
	world := mat.Mat4{
		right[0], right[1], right[2], 0,
		upOrtho[0], upOrtho[1], upOrtho[2], 0,
		back[0], back[1], back[2], 0,
		eye[0], eye[1], eye[2], 1,
	}
	c.View = world.InvAffine()
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() mat.Vec3 {
	return c.View.InvAffine().TransformAffine(mat.Vec3{})
}
