package world

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"collide3d/internal/collision"
	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World ties the scene graph to the collision world. It implements
// engine.WorldAccess for components.
type World struct {
	Scene   *engine.Scene
	Physics *physics.World
}

func New(options physics.Options) *World {
	w := &World{
		Scene:   engine.NewScene("Main"),
		Physics: physics.NewWorld(options),
	}
	w.Scene.World = w
	return w
}

// ArenaSize is the side of the demo scene's bounding inverse box.
const ArenaSize = 60.0

// PopulateDemo builds a floor, an arena and count oscillating shapes in a
// ring, then starts the scene.
func (w *World) PopulateDemo(count int, seed int64) {
	rng := rand.New(rand.NewSource(seed))

	arena := engine.NewGameObject("Arena")
	// The floor slab sits just inside the arena.
	arena.Transform.Position = rl.Vector3{Y: ArenaSize/2 - 1}
	arena.AddComponent(components.NewCollider(collision.KindInverseBox, rl.Vector3{X: ArenaSize, Y: ArenaSize, Z: ArenaSize}))
	w.Scene.AddGameObject(arena)

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floorCol := components.NewCollider(collision.KindBox, rl.Vector3{X: ArenaSize, Y: 1, Z: ArenaSize})
	floorCol.Friction = 0.5
	floor.AddComponent(floorCol)
	w.Scene.AddGameObject(floor)

	for i := range count {
		angle := float64(i) * (2 * math.Pi / float64(count))
		radius := 8 + rng.Float64()*5
		pos := rl.Vector3{
			X: float32(math.Cos(angle) * radius),
			Y: float32(2 + rng.Float64()*3),
			Z: float32(math.Sin(angle) * radius),
		}

		g := engine.NewGameObject(fmt.Sprintf("Shape_%d", i))
		g.Transform.Position = pos

		var col *components.Collider
		if i%2 == 0 {
			col = components.NewCollider(collision.KindBox, rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5})
			g.AddComponent(&components.Rotator{Speed: float32(30 + rng.Float64()*60)})
		} else {
			col = components.NewBallCollider(0.75)
		}
		col.Friction = float32(rng.Float64())
		g.AddComponent(col)

		osc := components.NewOscillator(
			rl.Vector3{X: float32(math.Cos(angle)), Z: float32(math.Sin(angle))},
			float32(2+rng.Float64()*3),
			float32(0.5+rng.Float64()*1.5),
		)
		osc.Phase = float32(rng.Float64() * 2 * math.Pi)
		g.AddComponent(osc)
		g.AddComponent(&components.ContactLogger{})

		w.Scene.AddGameObject(g)
	}

	w.Scene.Start()
	log.Printf("Scene: demo with %d shapes", count)
}

// Update runs components first, then the collision pass that delivers this
// tick's callbacks.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Physics.Update()
}

// AddShape implements engine.WorldAccess
func (w *World) AddShape(kind collision.Kind, owner collision.Owner) *collision.Shape {
	return w.Physics.AddShape(kind, owner)
}

// RemoveShape implements engine.WorldAccess
func (w *World) RemoveShape(s *collision.Shape) {
	w.Physics.RemoveShape(s)
}

// Shape implements engine.WorldAccess
func (w *World) Shape(h collision.Handle) (*collision.Shape, bool) {
	return w.Physics.Shapes.Get(h)
}

// ContactMargin implements engine.WorldAccess
func (w *World) ContactMargin() float32 {
	return w.Physics.Shapes.ContactMargin
}

// SpawnObject adds a GameObject at runtime and starts it.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	g.Start()
}

// Destroy removes a GameObject and its shapes. It is safe to call from a
// collision callback.
func (w *World) Destroy(g *engine.GameObject) {
	if w.Scene.FindByUID(g.UID) != g {
		return
	}
	w.Scene.RemoveGameObject(g)
}

// Raycast implements engine.WorldAccess
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask collision.LayerMask) (engine.RaycastResult, bool) {
	hit, ok := w.Physics.Raycast(origin, direction, maxDistance, mask)
	if !ok {
		return engine.RaycastResult{}, false
	}
	result := engine.RaycastResult{Point: hit.Point, Normal: hit.Normal, Distance: hit.Distance}
	if col, ok := hit.Shape.Owner().(*components.Collider); ok {
		result.GameObject = col.GetGameObject()
	}
	return result, true
}

// GetCollidableObjects returns all GameObjects that have a live Collider
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if col := engine.GetComponent[*components.Collider](g); col != nil && col.Shape() != nil {
			result = append(result, g)
		}
	}
	return result
}
