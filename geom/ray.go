package geom

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Ray is a half line. Direction is kept unit length.
type Ray struct {
	Origin    mat.Vec3
	Direction mat.Vec3
}

// NewRay returns a ray with normalized direction.
func NewRay(origin, dir mat.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalized()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mat.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ApplyMatrix4 returns the ray transformed by the affine matrix m.
func (r Ray) ApplyMatrix4(m mat.Mat4) Ray {
	o := m.TransformAffine(r.Origin)
	d := m.TransformAffine(r.Origin.Add(r.Direction)).Sub(o)
	return NewRay(o, d)
}

// DistanceSqToPoint returns the squared distance between the ray and p.
// Points behind the origin are measured from the origin.
func (r Ray) DistanceSqToPoint(p mat.Vec3) float32 {
	v := p.Sub(r.Origin)
	t := v.Dot(r.Direction)
	if t < 0 {
		return v.NormSq()
	}
	// Subtract the projection; |d x v|^2 cancels out in float32 far from the origin.
	return v.Sub(r.Direction.Mul(t)).NormSq()
}

// IntersectBox returns the distance to the entry point of the box.
// It returns zero when the origin is inside the box.
func (r Ray) IntersectBox(b Box) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		inv := 1 / r.Direction[i]
		t0 := (b.Min[i] - r.Origin[i]) * inv
		t1 := (b.Max[i] - r.Origin[i]) * inv
		if inv < 0 {
			t0, t1 = t1, t0
		}
		// NaN appears when the ray is parallel to the slab and starts on its plane.
		if t0 == t0 && t0 > tmin {
			tmin = t0
		}
		if t1 == t1 && t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// IntersectsBox reports whether the ray hits the box.
func (r Ray) IntersectsBox(b Box) bool {
	_, ok := r.IntersectBox(b)
	return ok
}

// IntersectTriangle returns the distance to the hit point on triangle abc.
// Triangles wound counter-clockwise seen from the ray are front faces.
func (r Ray) IntersectTriangle(a, b, c mat.Vec3, side Side) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	switch {
	case det == 0:
		return 0, false
	case det < 0 && side == FrontSide:
		return 0, false
	case det > 0 && side == BackSide:
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
