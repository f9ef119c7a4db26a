package geom

import (
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max mat.Vec3
}

// EmptyBox returns a box which contains nothing.
// Extending it by a point gives the box of the single point.
func EmptyBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: mat.Vec3{inf, inf, inf},
		Max: mat.Vec3{-inf, -inf, -inf},
	}
}

// BoxOf returns the bounding box of the points.
func BoxOf(ra pc.Vec3RandomAccessor) (Box, error) {
	min, max, err := pc.MinMaxVec3(ra)
	if err != nil {
		return EmptyBox(), err
	}
	return Box{Min: min, Max: max}, nil
}

func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] ||
		b.Min[1] > b.Max[1] ||
		b.Min[2] > b.Max[2]
}

func (b Box) Contains(v mat.Vec3) bool {
	return !(v[0] < b.Min[0] ||
		v[1] < b.Min[1] ||
		v[2] < b.Min[2] ||
		b.Max[0] < v[0] ||
		b.Max[1] < v[1] ||
		b.Max[2] < v[2])
}

// Extend returns the box grown to contain v.
func (b Box) Extend(v mat.Vec3) Box {
	for i := range v {
		b.Min[i] = float32Min(b.Min[i], v[i])
		b.Max[i] = float32Max(b.Max[i], v[i])
	}
	return b
}

func (b Box) Union(o Box) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = float32Min(b.Min[i], o.Min[i])
		b.Max[i] = float32Max(b.Max[i], o.Max[i])
	}
	return b
}

// Expand returns the box grown by d on every side.
func (b Box) Expand(d float32) Box {
	if b.IsEmpty() {
		return b
	}
	dv := mat.Vec3{d, d, d}
	return Box{Min: b.Min.Sub(dv), Max: b.Max.Add(dv)}
}

func (b Box) Size() mat.Vec3 {
	if b.IsEmpty() {
		return mat.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

func (b Box) Center() mat.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// LongestAxis returns the index of the axis with the largest extent.
func (b Box) LongestAxis() int {
	s := b.Size()
	axis := 0
	if s[1] > s[0] && s[1] >= s[2] {
		axis = 1
	} else if s[2] > s[0] && s[2] > s[1] {
		axis = 2
	}
	return axis
}

// DistanceToPoint returns the distance from v to the nearest point of the box.
// It is zero if v is inside.
func (b Box) DistanceToPoint(v mat.Vec3) float32 {
	var c mat.Vec3
	for i := range v {
		c[i] = float32Max(b.Min[i], float32Min(v[i], b.Max[i]))
	}
	return c.Sub(v).Norm()
}

func float32Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func float32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
