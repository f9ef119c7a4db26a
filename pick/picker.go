// Package pick resolves the scene entity under a pointer.
//
// A pointer position is turned into a ray from the camera. Meshes of
// the selectable scene nodes are raycast first. If none is hit, the
// nearest point of the point cloud lying within the point's rendered
// radius of the ray is searched in its bounding volume hierarchy.
package pick

import (
	"errors"

	"github.com/seqsense/pcdpicker/input"
	"github.com/seqsense/pcdpicker/scene"
)

const defaultDevicePixelRatio = 1

var (
	ErrNoElement = errors.New("no element")
	ErrNoCamera  = errors.New("no camera")
)

// Option configures a Picker.
type Option func(*Picker)

// WithDevicePixelRatio sets the ratio of device pixels to CSS pixels.
func WithDevicePixelRatio(r float32) Option {
	return func(p *Picker) {
		if r > 0 {
			p.devicePixelRatio = r
		}
	}
}

func WithObserver(o Observer) Option {
	return func(p *Picker) {
		p.observer = o
	}
}

// Picker tracks pointer events of an element and reports hovered and
// clicked entities.
// A click is a pointerdown and pointerup of the same pointer at the same
// position. It is not safe for concurrent use.
type Picker struct {
	el               *input.Element
	camera           *scene.Camera
	root             *scene.Node
	observer         Observer
	devicePixelRatio float32

	listeners []input.Listener
	sessions  map[int]*session
	target    *Result
}

// New attaches a Picker to el.
// Call Close to detach it.
func New(el *input.Element, cam *scene.Camera, opts ...Option) (*Picker, error) {
	if el == nil {
		return nil, ErrNoElement
	}
	if cam == nil {
		return nil, ErrNoCamera
	}
	p := &Picker{
		el:               el,
		camera:           cam,
		devicePixelRatio: defaultDevicePixelRatio,
		sessions:         make(map[int]*session),
	}
	for _, o := range opts {
		o(p)
	}
	p.listeners = []input.Listener{
		el.On(input.EventPointerMove, p.onPointerMove),
		el.On(input.EventPointerDown, p.onPointerDown),
	}
	return p, nil
}

// AttachScene sets the graph to be queried.
func (p *Picker) AttachScene(root *scene.Node) {
	p.root = root
}

// DetachScene clears the graph. Hover reports nil until a scene is attached.
func (p *Picker) DetachScene() {
	p.root = nil
}

func (p *Picker) SetObserver(o Observer) {
	p.observer = o
}

// Target returns the last resolved result.
func (p *Picker) Target() *Result {
	return p.target
}

// Pressed reports whether the pointer has an unresolved press.
func (p *Picker) Pressed(pointerID int) bool {
	_, ok := p.sessions[pointerID]
	return ok
}

// Close detaches all listeners of the picker including pending presses.
func (p *Picker) Close() {
	for _, l := range p.listeners {
		l.Remove()
	}
	p.listeners = nil
	for id, s := range p.sessions {
		s.Cancel()
		delete(p.sessions, id)
	}
	p.target = nil
	p.root = nil
	p.observer = nil
}

// Intersect resolves the entity at ndc on the attached scene.
func (p *Picker) Intersect(ndc NDC) *Result {
	if p.root == nil {
		return nil
	}
	r := RayFromCamera(ndc, p.camera)
	candidates := Candidates(p.root)

	res := IntersectMeshes(r, candidates)
	if res == nil {
		res = IntersectPointCloud(r, candidates, p.devicePixelRatio)
	}
	if res != nil && res.Object.Meta.SelectParent != nil {
		res.Object = res.Object.Meta.SelectParent
	}
	return res
}

func (p *Picker) pick(e input.PointerEvent) *Result {
	ndc, ok := PointerNDC(e, p.el.BoundingClientRect())
	if !ok {
		p.target = nil
		return nil
	}
	p.target = p.Intersect(ndc)
	return p.target
}

func (p *Picker) onPointerMove(e input.PointerEvent) {
	if p.observer == nil {
		return
	}
	if p.root == nil {
		p.target = nil
		p.observer.OnHover(nil)
		return
	}
	p.observer.OnHover(p.pick(e))
}

func (p *Picker) onPointerDown(e input.PointerEvent) {
	if s, ok := p.sessions[e.PointerID]; ok {
		s.Cancel()
	}
	id := e.PointerID
	ndc, ok := PointerNDC(e, p.el.BoundingClientRect())
	l := p.el.On(input.EventPointerUp, func(e input.PointerEvent) {
		if e.PointerID == id {
			p.onPointerUp(e)
		}
	})
	p.sessions[id] = newSession(ndc, ok, l)
}

func (p *Picker) onPointerUp(e input.PointerEvent) {
	s, ok := p.sessions[e.PointerID]
	if !ok {
		return
	}
	delete(p.sessions, e.PointerID)

	ndc, ok := PointerNDC(e, p.el.BoundingClientRect())
	if !s.Release(ndc, ok) || p.observer == nil {
		return
	}
	p.target = p.Intersect(ndc)
	p.observer.OnPick(p.target)
}
