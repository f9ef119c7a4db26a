package geom

// Side selects which faces of a triangle can be hit.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	default:
		return "unknown"
	}
}
