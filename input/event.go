// Package input abstracts the host surface which delivers pointer events.
package input

// EventType identifies a pointer event.
type EventType int

const (
	EventPointerMove EventType = iota
	EventPointerDown
	EventPointerUp
)

func (e EventType) String() string {
	switch e {
	case EventPointerMove:
		return "pointermove"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	default:
		return "unknown"
	}
}

// MouseButton identifies a pressed button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// PointerEvent is a pointer event in client (CSS pixel) coordinates.
type PointerEvent struct {
	Type      EventType
	PointerID int
	ClientX   float32
	ClientY   float32
	Button    MouseButton
}

// Rect is the bounding rectangle of an element in client coordinates.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
