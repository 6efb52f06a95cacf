package physics

import (
	"log"
	"math"

	"collide3d/internal/collision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - shapes within the same cells are candidates
const CellSize = 5.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3, cellSize float32) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X / cellSize))),
		Y: int(math.Floor(float64(pos.Y / cellSize))),
		Z: int(math.Floor(float64(pos.Z / cellSize))),
	}
}

type Options struct {
	CellSize float32
	// ContactMargin grows a shape when an impenetrable contact is retested.
	ContactMargin float32
	// Shapes spanning more cells than this are tested against everything.
	MaxCellsPerShape int
	// StatsInterval logs the counters every N ticks; 0 disables.
	StatsInterval int
}

func DefaultOptions() Options {
	return Options{
		CellSize:         CellSize,
		ContactMargin:    collision.DefaultContactMargin,
		MaxCellsPerShape: 64,
	}
}

// Stats are the broad-phase counters of the last tick.
type Stats struct {
	Shapes     int
	Products   int // candidate pairs considered
	Checks     int // narrow-phase tests run
	Collisions int // enter + update results
	Callbacks  int // lifecycle callbacks delivered
	Dropped    int // events whose shapes died before dispatch
}

// World owns every shape and runs the collision pass once per tick: all
// tests first, then every queued lifecycle callback.
type World struct {
	Shapes *collision.Pool

	options   Options
	grid      map[CellKey][]*collision.Shape
	unbounded []*collision.Shape // inverse boxes and oversized shapes
	events    EventQueue
	stats     Stats
	tick      int
}

// withDefaults fills unset or invalid fields from DefaultOptions.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.CellSize <= 0 {
		o.CellSize = defaults.CellSize
	}
	if o.ContactMargin <= 0 {
		o.ContactMargin = defaults.ContactMargin
	}
	if o.MaxCellsPerShape <= 0 {
		o.MaxCellsPerShape = defaults.MaxCellsPerShape
	}
	return o
}

func NewWorld(options Options) *World {
	options = options.withDefaults()

	pool := collision.NewPool()
	pool.ContactMargin = options.ContactMargin

	return &World{
		Shapes:  pool,
		options: options,
		grid:    make(map[CellKey][]*collision.Shape),
	}
}

func (w *World) Options() Options {
	return w.options
}

func (w *World) AddShape(kind collision.Kind, owner collision.Owner) *collision.Shape {
	return w.Shapes.NewShape(kind, owner)
}

func (w *World) RemoveShape(s *collision.Shape) {
	w.Shapes.Destroy(s)
}

// Stats returns the counters of the last Update.
func (w *World) Stats() Stats {
	return w.stats
}

func (w *World) Tick() int {
	return w.tick
}

func (w *World) Update() {
	w.stats = Stats{Shapes: w.Shapes.Len()}

	// 1. Pull poses from owners
	w.Shapes.Each(func(s *collision.Shape) {
		s.Sync()
	})

	// 2. Broad phase + narrow phase, queueing lifecycle events
	w.rebuildGrid()
	seen := make(map[collision.Handle]struct{})
	for _, s := range w.Shapes.Shapes() {
		if !s.Enabled() || !s.ChecksForCollisions() {
			continue
		}
		clear(seen)
		for _, other := range w.candidates(s, seen) {
			w.test(s, other)
		}
	}

	// 3. Dispatch collision callbacks
	w.dispatchCollisionCallbacks()

	w.tick++
	if w.options.StatsInterval > 0 && w.tick%w.options.StatsInterval == 0 {
		st := w.stats
		log.Printf("Physics: tick %d, %d shapes, %d products, %d checks, %d collisions, %d callbacks (%d dropped)",
			w.tick, st.Shapes, st.Products, st.Checks, st.Collisions, st.Callbacks, st.Dropped)
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	w.unbounded = w.unbounded[:0]

	w.Shapes.Each(func(s *collision.Shape) {
		if !s.Enabled() {
			return
		}
		if s.Kind() == collision.KindInverseBox {
			w.unbounded = append(w.unbounded, s)
			return
		}
		lo, hi, ok := w.cellRange(s.RightBox())
		if !ok {
			w.unbounded = append(w.unbounded, s)
			return
		}
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					w.grid[key] = append(w.grid[key], s)
				}
			}
		}
	})
}

// cellRange returns the cells a box covers, or false when there are more
// than MaxCellsPerShape of them.
func (w *World) cellRange(box collision.AABB) (CellKey, CellKey, bool) {
	lo := posToCell(box.Min, w.options.CellSize)
	hi := posToCell(box.Max, w.options.CellSize)
	count := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	return lo, hi, count > 0 && count <= w.options.MaxCellsPerShape
}

// candidates returns the shapes s should test this tick: everything it is
// registered with, everything sharing a grid cell and every unbounded shape.
func (w *World) candidates(s *collision.Shape, seen map[collision.Handle]struct{}) []*collision.Shape {
	var out []*collision.Shape
	add := func(other *collision.Shape) {
		if other == s {
			return
		}
		if _, dup := seen[other.Handle()]; dup {
			return
		}
		seen[other.Handle()] = struct{}{}
		out = append(out, other)
	}

	for _, h := range s.CollidingShapes() {
		if other, ok := w.Shapes.Get(h); ok {
			add(other)
		}
	}

	lo, hi, ok := w.cellRange(s.RightBox().Expand(w.options.ContactMargin))
	if s.Kind() == collision.KindInverseBox || !ok {
		w.Shapes.Each(add)
		return out
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				for _, other := range w.grid[CellKey{x, y, z}] {
					add(other)
				}
			}
		}
	}
	for _, other := range w.unbounded {
		add(other)
	}
	return out
}

// test runs one pair. Registered pairs always reach Collides so separations,
// layer changes and disabling are seen; new pairs are filtered first.
func (w *World) test(s, other *collision.Shape) {
	w.stats.Products++

	if !s.IsCollidingWith(other) {
		if !other.Enabled() || sameOwner(s, other) || s.Ignores(other) {
			return
		}
		if !coarseOverlap(s, other, w.options.ContactMargin) {
			return
		}
	}

	w.stats.Checks++
	result, info := s.Collides(other)
	switch result {
	case collision.NoCollision:
		return
	case collision.EnterCollision, collision.UpdateCollision:
		w.stats.Collisions++
	}
	w.events.Push(CollisionEvent{Result: result, Shape: s.Handle(), Other: other.Handle(), Info: info})
}

func sameOwner(a, b *collision.Shape) bool {
	return a.Owner() != nil && a.Owner() == b.Owner()
}

func coarseOverlap(a, b *collision.Shape, margin float32) bool {
	if a.Kind() == collision.KindInverseBox || b.Kind() == collision.KindInverseBox {
		return true
	}
	return a.RightBox().Expand(margin).Intersects(b.RightBox())
}

// dispatchCollisionCallbacks delivers the queued events. A callback may move
// or destroy shapes, so both sides are looked up again before each call.
func (w *World) dispatchCollisionCallbacks() {
	for _, evt := range w.events.Drain() {
		s, ok := w.Shapes.Get(evt.Shape)
		other, otherOK := w.Shapes.Get(evt.Other)
		if !ok || !otherOK {
			w.stats.Dropped++
			continue
		}

		owner := s.Owner()
		if owner == nil {
			continue
		}

		switch evt.Result {
		case collision.EnterCollision:
			owner.OnCollisionEnter(evt.Info)
		case collision.UpdateCollision:
			owner.OnCollisionUpdate(evt.Info)
		case collision.ExitCollision:
			owner.OnCollisionExit(other)
		}
		w.stats.Callbacks++
	}
}
