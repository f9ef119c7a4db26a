package input

// Handler receives dispatched events.
type Handler func(PointerEvent)

type handler struct {
	id uint32
	fn Handler
}

// Element is an event target with a bounding rectangle, like a canvas.
// It is not safe for concurrent use.
type Element struct {
	rect     Rect
	nextID   uint32
	handlers map[EventType][]handler
}

// NewElement returns an element covering r.
func NewElement(r Rect) *Element {
	return &Element{
		rect:     r,
		handlers: make(map[EventType][]handler),
	}
}

// BoundingClientRect returns the current rectangle of the element.
func (e *Element) BoundingClientRect() Rect {
	return e.rect
}

// SetRect updates the rectangle, e.g. on resize.
func (e *Element) SetRect(r Rect) {
	e.rect = r
}

// On registers fn for events of the type.
func (e *Element) On(typ EventType, fn Handler) Listener {
	e.nextID++
	id := e.nextID
	e.handlers[typ] = append(e.handlers[typ], handler{id: id, fn: fn})
	return Listener{id: id, el: e, typ: typ}
}

// Listeners returns the number of handlers registered for the type.
func (e *Element) Listeners(typ EventType) int {
	return len(e.handlers[typ])
}

// Dispatch calls the handlers of ev.Type in registration order.
// Handlers added during dispatch are called from the next event.
// Handlers removed during dispatch are not called.
func (e *Element) Dispatch(ev PointerEvent) {
	hs := e.handlers[ev.Type]
	if len(hs) == 0 {
		return
	}
	snapshot := make([]handler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		if !e.registered(ev.Type, h.id) {
			continue
		}
		h.fn(ev)
	}
}

func (e *Element) registered(typ EventType, id uint32) bool {
	for _, h := range e.handlers[typ] {
		if h.id == id {
			return true
		}
	}
	return false
}

func (e *Element) remove(typ EventType, id uint32) {
	hs := e.handlers[typ]
	for i, h := range hs {
		if h.id == id {
			e.handlers[typ] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// Listener allows removing a registered handler.
type Listener struct {
	id  uint32
	el  *Element
	typ EventType
}

// Remove unregisters the handler. Removing twice is a no-op.
func (l Listener) Remove() {
	if l.el == nil {
		return
	}
	l.el.remove(l.typ, l.id)
}
