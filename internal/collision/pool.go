package collision

import "fmt"

// DefaultContactMargin is how much a shape grows when retesting an
// impenetrable contact, so a body resolved to exactly touching stays in
// contact.
const DefaultContactMargin float32 = 0.01

// Pool owns every shape of a simulation and hands out generation-checked
// handles for them. It is the context a collision pass runs against; nothing
// in this package is global.
type Pool struct {
	ContactMargin float32

	slots  slotStore
	shapes []*Shape // indexed by slot id - 1
	live   int
}

func NewPool() *Pool {
	return &Pool{ContactMargin: DefaultContactMargin}
}

// NewShape creates a shape of kind attached to owner (which may be nil) and
// syncs it from the owner's pose.
func (p *Pool) NewShape(kind Kind, owner Owner) *Shape {
	if kind >= kindCount {
		panic(fmt.Errorf("%w: %d", ErrUnknownKind, kind))
	}

	h := p.slots.create()
	s := newShape(p, h, kind, owner)

	idx := int(h.id()) - 1
	if idx < len(p.shapes) {
		p.shapes[idx] = s
	} else {
		p.shapes = append(p.shapes, s)
	}
	p.live++

	s.Sync()
	return s
}

// Destroy releases the shape's handle and removes it from every registry that
// references it. No exit callbacks are emitted. Returns false if the shape
// was already destroyed.
func (p *Pool) Destroy(s *Shape) bool {
	if s == nil || s.pool != p || !p.slots.destroy(s.handle) {
		return false
	}
	p.shapes[s.handle.id()-1] = nil
	p.live--

	for _, other := range p.shapes {
		if other != nil {
			delete(other.colliding, s.handle)
		}
	}
	s.colliding = nil
	return true
}

// Get resolves a handle. It fails for the zero handle and for handles whose
// shape has been destroyed, even if the slot was reused since.
func (p *Pool) Get(h Handle) (*Shape, bool) {
	if !p.slots.isAlive(h) {
		return nil, false
	}
	return p.shapes[h.id()-1], true
}

func (p *Pool) Alive(h Handle) bool {
	return p.slots.isAlive(h)
}

// Len returns the number of live shapes.
func (p *Pool) Len() int {
	return p.live
}

// Each calls fn for every live shape in slot order.
func (p *Pool) Each(fn func(s *Shape)) {
	for _, s := range p.shapes {
		if s != nil {
			fn(s)
		}
	}
}

// Shapes returns the live shapes in slot order.
func (p *Pool) Shapes() []*Shape {
	out := make([]*Shape, 0, p.live)
	p.Each(func(s *Shape) {
		out = append(out, s)
	})
	return out
}
