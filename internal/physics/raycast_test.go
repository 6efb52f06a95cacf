package physics

import (
	"testing"

	"collide3d/internal/collision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestRaycastClosestHit(t *testing.T) {
	w := NewWorld(DefaultOptions())
	far := w.AddShape(collision.KindBox, &recorder{position: rl.Vector3{X: 10}, size: cube(2)})
	nearBall := w.AddShape(collision.KindBall, &recorder{position: rl.Vector3{X: 5}, size: cube(2)})
	w.Update()

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, collision.LayerAll)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Shape != nearBall {
		t.Errorf("Expected closest shape to be the ball, got %v", hit.Shape)
	}
	if !near(hit.Distance, 4) || !near(hit.Normal.X, -1) {
		t.Errorf("Expected hit at 4 with normal -X, got %v %v", hit.Distance, hit.Normal)
	}

	nearBall.Setup(collision.Layer(2), collision.LayerNone)
	hit, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, collision.LayerDefault)
	if !ok || hit.Shape != far {
		t.Fatalf("Expected mask to skip the ball and hit the box, got %v %v", ok, hit.Shape)
	}
	if !near(hit.Distance, 9) {
		t.Errorf("Expected box hit at 9, got %v", hit.Distance)
	}
}

func TestRaycastMissAndRange(t *testing.T) {
	w := NewWorld(DefaultOptions())
	w.AddShape(collision.KindBox, &recorder{position: rl.Vector3{X: 10}, size: cube(2)})
	w.Update()

	tests := []struct {
		name string
		dir  rl.Vector3
		max  float32
		ok   bool
	}{
		{"toward", rl.Vector3{X: 1}, 100, true},
		{"away", rl.Vector3{X: -1}, 100, false},
		{"short", rl.Vector3{X: 1}, 5, false},
		{"zero", rl.Vector3{}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := w.Raycast(rl.Vector3{}, tt.dir, tt.max, collision.LayerAll); ok != tt.ok {
				t.Errorf("Raycast hit = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestRaycastRotatedBox(t *testing.T) {
	box := collision.NewBox(rl.Vector3{X: 10}, cube(2), rl.Vector3{Y: 45})
	hit, ok := raycastBox(rl.Vector3{}, rl.Vector3{X: 1}, box, 100)
	if !ok {
		t.Fatal("Expected a hit on rotated box")
	}
	// The corner points at the origin: sqrt(2) from the center.
	if !near(hit.Distance, 10-1.41421356) {
		t.Errorf("Expected hit at corner, got %v", hit.Distance)
	}
}

func TestRaycastInverseBox(t *testing.T) {
	arena := collision.NewInverseBox(rl.Vector3{}, cube(20))

	hit, ok := raycastInverseBox(rl.Vector3{}, rl.Vector3{Y: -1}, arena, 100)
	if !ok {
		t.Fatal("Expected to hit the floor of the arena")
	}
	if !near(hit.Distance, 10) || !near(hit.Normal.Y, 1) {
		t.Errorf("Expected floor hit at 10 facing up, got %v %v", hit.Distance, hit.Normal)
	}

	hit, ok = raycastInverseBox(rl.Vector3{X: 50}, rl.Vector3{X: -1}, arena, 100)
	if !ok || hit.Distance != 0 {
		t.Errorf("Expected immediate hit outside the arena, got %v %v", ok, hit.Distance)
	}
}
