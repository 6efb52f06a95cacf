package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"collide3d/internal/collision"
	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const yamlScene = `
objects:
  - name: Floor
    position: [0, -0.5, 0]
    components:
      - type: Collider
        kind: Box
        size: [20, 1, 20]
        friction: 0.7
  - name: Ball
    uid: 9000
    position: [0, 3, 0]
    components:
      - type: Collider
        kind: Ball
        size: [1, 1, 1]
        layers: 2
      - type: Rigidbody
        bounciness: 0
      - type: Script
        name: ContactLogger
`

const jsonScene = `{
  "objects": [
    {
      "name": "Spinner",
      "position": [1, 2, 3],
      "rotation": [0, 45, 0],
      "scale": [2, 2, 2],
      "components": [
        {"type": "Collider", "kind": "Box", "size": [1, 1, 1]},
        {"type": "Script", "name": "Rotator", "props": {"speed": 30}}
      ]
    }
  ]
}`

func writeScene(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAMLScene(t *testing.T) {
	w := New(physics.DefaultOptions())
	if err := w.LoadScene(writeScene(t, "scene.yaml", yamlScene)); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if len(w.Scene.GameObjects) != 2 || w.Physics.Shapes.Len() != 2 {
		t.Fatalf("Expected 2 objects with shapes, got %d / %d", len(w.Scene.GameObjects), w.Physics.Shapes.Len())
	}

	ball := w.Scene.FindByUID(9000)
	if ball == nil || ball.Name != "Ball" {
		t.Fatalf("Expected Ball restored with UID 9000, got %v", ball)
	}
	col := engine.GetComponent[*components.Collider](ball)
	if col == nil || col.Kind != collision.KindBall || col.Shape().Layers() != collision.Layer(1) {
		t.Errorf("Expected a ball collider on layer 1, got %+v", col)
	}
	if engine.GetComponent[*components.ContactLogger](ball) == nil {
		t.Error("Expected ContactLogger script")
	}
	if rb := engine.GetComponent[*components.Rigidbody](ball); rb == nil || rb.Bounciness != 0 {
		t.Error("Expected rigidbody with bounciness 0")
	}

	floor := w.Scene.FindByName("Floor")
	if s := engine.GetComponent[*components.Collider](floor).Shape(); s.FrictionCoefficient() != 0.7 {
		t.Errorf("Expected floor friction 0.7, got %v", s.FrictionCoefficient())
	}
}

func TestLoadJSONScene(t *testing.T) {
	w := New(physics.DefaultOptions())
	if err := w.LoadScene(writeScene(t, "scene.json", jsonScene)); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	g := w.Scene.FindByName("Spinner")
	if g == nil {
		t.Fatal("Expected Spinner")
	}
	if g.Transform.Scale != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Expected scale 2, got %v", g.Transform.Scale)
	}
	s := engine.GetComponent[*components.Collider](g).Shape()
	box, ok := s.Volume().(collision.Box)
	if !ok || !box.Rotated() {
		t.Fatalf("Expected a rotated box volume, got %T", s.Volume())
	}
	if box.HalfSize.X != 1 {
		t.Errorf("Expected scaled half size 1, got %v", box.HalfSize.X)
	}
	if r := engine.GetComponent[*components.Rotator](g); r == nil || r.Speed != 30 {
		t.Error("Expected Rotator with speed 30")
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr error
	}{
		{"unknown component", "a.yaml", "objects:\n  - name: A\n    components:\n      - type: Teleporter\n", ErrUnknownComponent},
		{"unknown script", "b.json", `{"objects":[{"name":"A","components":[{"type":"Script","name":"Nope"}]}]}`, ErrUnknownComponent},
		{"unknown kind", "c.yaml", "objects:\n  - name: A\n    components:\n      - type: Collider\n        kind: Capsule\n", collision.ErrUnknownKind},
		{"bad json", "d.json", "{", nil},
		{"bad yaml", "e.yaml", "objects: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(physics.DefaultOptions())
			err := w.LoadScene(writeScene(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(w.Scene.GameObjects) != 0 {
				t.Errorf("Expected nothing added on error, got %d objects", len(w.Scene.GameObjects))
			}
		})
	}

	w := New(physics.DefaultOptions())
	if err := w.LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestSaveSceneRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			w := New(physics.DefaultOptions())
			if err := w.LoadScene(writeScene(t, "scene.yaml", yamlScene)); err != nil {
				t.Fatalf("LoadScene failed: %v", err)
			}
			spawn(w, "Shot", rl.Vector3{}, components.NewBallCollider(1)).Tags = []string{"projectile"}

			path := filepath.Join(t.TempDir(), name)
			if err := w.SaveScene(path); err != nil {
				t.Fatalf("SaveScene failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			sf, err := ParseScene(data, FormatOf(path))
			if err != nil {
				t.Fatalf("ParseScene failed: %v", err)
			}
			if len(sf.Objects) != 2 {
				t.Fatalf("Expected projectiles skipped, got %d objects", len(sf.Objects))
			}

			objects, err := Instantiate(sf)
			if err != nil {
				t.Fatalf("Instantiate failed: %v", err)
			}
			ball := objects[1]
			if ball.UID != 9000 || len(ball.Components()) != 3 {
				t.Errorf("Expected Ball with 3 components and UID 9000, got %d / %d", ball.UID, len(ball.Components()))
			}
			col := engine.GetComponent[*components.Collider](ball)
			if col.Kind != collision.KindBall || col.Layers != collision.Layer(1) {
				t.Errorf("Collider settings lost: %+v", col)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"scene.yaml": FormatYAML,
		"scene.YML":  FormatYAML,
		"scene.json": FormatJSON,
		"scene":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestInstantiateMixedUIDs(t *testing.T) {
	high := engine.NewGameObject("Marker").UID + 2
	sf := &SceneFile{Objects: []ObjectDef{
		{Name: "Fresh"},
		{Name: "Fresher"},
		{Name: "Saved", UID: high},
	}}

	objects, err := Instantiate(sf)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	seen := map[uint64]string{}
	for _, g := range objects {
		if prev, ok := seen[g.UID]; ok {
			t.Errorf("%s and %s share UID %d", prev, g.Name, g.UID)
		}
		seen[g.UID] = g.Name
	}
	if objects[2].UID != high {
		t.Errorf("Expected saved UID %d, got %d", high, objects[2].UID)
	}
}

func TestLoadBundledScene(t *testing.T) {
	w := New(physics.DefaultOptions())
	if err := w.LoadScene(filepath.Join("..", "..", "scenes", "pit.yaml")); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if n := len(w.GetCollidableObjects()); n != 5 {
		t.Errorf("Expected 5 collidable objects, got %d", n)
	}
	for range 120 {
		w.Update(dt)
	}
	if len(w.Scene.FindByTag("projectile")) == 0 {
		t.Error("Expected the cannon to have launched")
	}
}
