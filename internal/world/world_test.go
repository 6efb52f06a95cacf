package world

import (
	"testing"

	"collide3d/internal/collision"
	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const dt = float32(1.0 / 60.0)

func spawn(w *World, name string, pos rl.Vector3, comps ...engine.Component) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	for _, c := range comps {
		g.AddComponent(c)
	}
	w.SpawnObject(g)
	return g
}

func TestBallSettlesOnFloor(t *testing.T) {
	w := New(physics.DefaultOptions())
	floorCol := components.NewCollider(collision.KindBox, rl.Vector3{X: 20, Y: 1, Z: 20})
	floorCol.Friction = 0.8
	spawn(w, "Floor", rl.Vector3{Y: -0.5}, floorCol)

	rb := components.NewRigidbody()
	rb.Velocity = rl.Vector3{X: 1}
	ballCol := components.NewBallCollider(0.5)
	ball := spawn(w, "Ball", rl.Vector3{Y: 3}, ballCol, rb)

	for range 600 {
		w.Update(dt)
	}

	y := ball.Transform.Position.Y
	if y < 0.45 || y > 0.55 {
		t.Errorf("Expected ball resting at y=0.5, got %v", y)
	}
	if rb.Velocity.X > 0.01 {
		t.Errorf("Expected floor friction to stop sliding, vx = %v", rb.Velocity.X)
	}
	if !ballCol.Shape().IsCollidingWith(floorCol.Shape()) {
		t.Error("Expected resting contact to stay registered")
	}
}

type despawner struct {
	engine.BaseComponent
	hits int
}

func (d *despawner) OnCollisionEnter(c engine.Collision) {
	d.hits++
	d.GetGameObject().Scene.World.Destroy(c.Other)
}

func (d *despawner) OnCollisionExit(other *engine.GameObject) {}

func TestDestroyFromCallback(t *testing.T) {
	w := New(physics.DefaultOptions())
	da, db := &despawner{}, &despawner{}
	a := spawn(w, "A", rl.Vector3{}, components.NewBallCollider(1), da)
	b := spawn(w, "B", rl.Vector3{X: 1}, components.NewBallCollider(1), db)

	w.Update(dt)

	if da.hits+db.hits != 1 {
		t.Fatalf("Expected exactly one enter to survive, got %d", da.hits+db.hits)
	}
	survivor, victim := a, b
	if db.hits == 1 {
		survivor, victim = b, a
	}
	if w.Scene.FindByUID(victim.UID) != nil {
		t.Error("Expected destroyed object to leave the scene")
	}
	if w.Scene.FindByUID(survivor.UID) == nil {
		t.Error("Expected survivor to remain")
	}
	if w.Physics.Shapes.Len() != 1 {
		t.Errorf("Expected 1 live shape, got %d", w.Physics.Shapes.Len())
	}

	w.Update(dt)
	if got := len(engine.GetComponent[*components.Collider](survivor).Contacts()); got != 0 {
		t.Errorf("Expected no contacts after destroy, got %d", got)
	}
}

func TestContactLoggerCycle(t *testing.T) {
	w := New(physics.DefaultOptions())
	logger := &components.ContactLogger{}
	spawn(w, "Sensor", rl.Vector3{}, components.NewBallCollider(1), logger)
	mover := spawn(w, "Mover", rl.Vector3{X: 10}, components.NewBallCollider(1))

	for _, x := range []float32{10, 1.5, 1.2, 1.0, 10} {
		mover.Transform.Position.X = x
		w.Update(dt)
	}

	if logger.Enters != 1 || logger.Stays != 2 || logger.Exits != 1 {
		t.Errorf("Expected 1/2/1 enters/stays/exits, got %d/%d/%d", logger.Enters, logger.Stays, logger.Exits)
	}
}

func TestWorldRaycast(t *testing.T) {
	w := New(physics.DefaultOptions())
	target := spawn(w, "Target", rl.Vector3{X: 10}, components.NewCollider(collision.KindBox, rl.Vector3{X: 2, Y: 2, Z: 2}))

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 50, collision.LayerAll)
	if !ok {
		t.Fatal("Expected raycast hit")
	}
	if hit.GameObject != target {
		t.Errorf("Expected to hit Target, got %v", hit.GameObject)
	}

	if _, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 50, collision.Layer(5)); ok {
		t.Error("Expected mask without the target's layer to miss")
	}
}

func TestLauncherSpawnsAndCleansUp(t *testing.T) {
	w := New(physics.DefaultOptions())
	launcher := &components.Launcher{Interval: 0.1, Lifetime: 0.25, Radius: 0.25, Limit: 2}
	spawn(w, "Launcher", rl.Vector3{Y: 100}, launcher)

	for range 60 {
		w.Update(dt)
	}

	if launcher.Launched() != 2 {
		t.Errorf("Expected 2 launches, got %d", launcher.Launched())
	}
	if got := len(w.Scene.FindByTag("projectile")); got != 0 {
		t.Errorf("Expected projectiles removed after their lifetime, got %d", got)
	}
	if w.Physics.Shapes.Len() != 0 {
		t.Errorf("Expected shapes released with their objects, got %d", w.Physics.Shapes.Len())
	}
}

func TestPopulateDemo(t *testing.T) {
	w := New(physics.DefaultOptions())
	w.PopulateDemo(10, 1)

	if got := len(w.GetCollidableObjects()); got != 12 {
		t.Errorf("Expected 12 collidable objects, got %d", got)
	}
	for range 30 {
		w.Update(dt)
	}
	if w.Physics.Tick() != 30 {
		t.Errorf("Expected 30 physics ticks, got %d", w.Physics.Tick())
	}
}
