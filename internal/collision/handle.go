package collision

import "strconv"

// Handle identifies a shape inside its Pool. The upper 32 bits carry the
// slot generation, so a handle kept after its shape is destroyed stops
// resolving instead of pointing at a recycled slot.
type Handle uint64

// NoHandle never refers to a shape.
const NoHandle Handle = 0

type slotID uint32
type generation uint32

const slotIDBits = 32

func makeHandle(id slotID, gen generation) Handle {
	return Handle(uint64(gen)<<slotIDBits | uint64(id))
}

func (h Handle) id() slotID {
	return slotID(uint32(h))
}

func (h Handle) generation() generation {
	return generation(uint32(uint64(h) >> slotIDBits))
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.id()), 10) + "v" + strconv.FormatUint(uint64(h.generation()), 10)
}

func (h Handle) Valid() bool {
	return h != NoHandle
}

// slotStore tracks slot generations and free ids. Ids start at 1 so the zero
// handle stays unused.
type slotStore struct {
	gen  []generation
	free []slotID
}

func (s *slotStore) create() Handle {
	var id slotID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = slotID(len(s.gen))
	}
	return makeHandle(id, s.gen[id-1])
}

func (s *slotStore) destroy(h Handle) bool {
	if !s.isAlive(h) {
		return false
	}
	s.gen[h.id()-1]++
	s.free = append(s.free, h.id())
	return true
}

func (s *slotStore) isAlive(h Handle) bool {
	id := h.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == h.generation()
}
