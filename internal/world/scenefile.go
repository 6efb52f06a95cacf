package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// ErrUnknownComponent is returned for a component type nothing registered.
var ErrUnknownComponent = errors.New("unknown component")

// --- File types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

type ObjectDef struct {
	UID        uint64           `json:"uid,omitempty" yaml:"uid,omitempty"`
	Name       string           `json:"name" yaml:"name"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Position   [3]float32       `json:"position" yaml:"position"`
	Rotation   [3]float32       `json:"rotation" yaml:"rotation"`
	Scale      [3]float32       `json:"scale" yaml:"scale"`
	Components []map[string]any `json:"components" yaml:"components"`
}

// Format picks the codec from the file extension: .yaml and .yml are YAML,
// anything else JSON.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ParseScene decodes a scene file. YAML integers are widened to float64 so
// components see the same types from either format.
func ParseScene(data []byte, format Format) (*SceneFile, error) {
	var sf SceneFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, err
		}
		for i := range sf.Objects {
			for j, c := range sf.Objects[i].Components {
				sf.Objects[i].Components[j] = normalize(c).(map[string]any)
			}
		}
	default:
		if err := json.Unmarshal(data, &sf); err != nil {
			return nil, err
		}
	}
	return &sf, nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	}
	return v
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	sf, err := ParseScene(data, FormatOf(path))
	if err != nil {
		return fmt.Errorf("parse scene %s: %w", path, err)
	}

	objects, err := Instantiate(sf)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}

	for _, g := range objects {
		w.Scene.AddGameObject(g)
	}
	w.Scene.Start()
	return nil
}

// Instantiate builds the GameObjects of a scene file without adding them to
// a scene. Any bad component fails the whole file.
func Instantiate(sf *SceneFile) ([]*engine.GameObject, error) {
	// Saved UIDs are reserved up front so objects without one never get a
	// UID that a later object in the file claims.
	for _, objDef := range sf.Objects {
		engine.ReserveUID(objDef.UID)
	}

	objects := make([]*engine.GameObject, 0, len(sf.Objects))
	for _, objDef := range sf.Objects {
		g := engine.NewGameObject(objDef.Name)
		if objDef.UID != 0 {
			g.UID = objDef.UID
		}
		g.Tags = objDef.Tags
		g.Transform.Position = vec(objDef.Position)
		g.Transform.Rotation = vec(objDef.Rotation)

		// Default scale to 1 if zero
		if objDef.Scale == [3]float32{} {
			g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
		} else {
			g.Transform.Scale = vec(objDef.Scale)
		}

		for i, data := range objDef.Components {
			c, err := loadComponent(data)
			if err != nil {
				return nil, fmt.Errorf("%s component %d: %w", objDef.Name, i, err)
			}
			g.AddComponent(c)
		}
		objects = append(objects, g)
	}
	return objects, nil
}

func loadComponent(data map[string]any) (engine.Component, error) {
	typeName, _ := data["type"].(string)
	if typeName == "Script" {
		name, _ := data["name"].(string)
		props, _ := data["props"].(map[string]any)
		if props == nil {
			props = map[string]any{}
		}
		if c := engine.CreateScript(name, props); c != nil {
			return c, nil
		}
		return nil, fmt.Errorf("%w: script %q", ErrUnknownComponent, name)
	}

	c, ok := engine.CreateComponent(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, typeName)
	}
	if err := c.Deserialize(data); err != nil {
		return nil, err
	}
	return c, nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Saving ---

func (w *World) SaveScene(path string) error {
	var sf SceneFile

	for _, g := range w.Scene.GameObjects {
		// Skip runtime-spawned projectiles
		if g.HasTag("projectile") {
			continue
		}

		objDef := ObjectDef{
			UID:      g.UID,
			Name:     g.Name,
			Tags:     g.Tags,
			Position: [3]float32{g.Transform.Position.X, g.Transform.Position.Y, g.Transform.Position.Z},
			Rotation: [3]float32{g.Transform.Rotation.X, g.Transform.Rotation.Y, g.Transform.Rotation.Z},
			Scale:    [3]float32{g.Transform.Scale.X, g.Transform.Scale.Y, g.Transform.Scale.Z},
		}

		for _, c := range g.Components() {
			if data := serializeComponent(c); data != nil {
				objDef.Components = append(objDef.Components, data)
			}
		}

		sf.Objects = append(sf.Objects, objDef)
	}

	var data []byte
	var err error
	if FormatOf(path) == FormatYAML {
		data, err = yaml.Marshal(sf)
	} else {
		data, err = json.MarshalIndent(sf, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	return nil
}

func serializeComponent(c engine.Component) map[string]any {
	if s, ok := c.(engine.Serializable); ok {
		return s.Serialize()
	}
	// Try script registry
	if name, props, ok := engine.SerializeScript(c); ok {
		return map[string]any{"type": "Script", "name": name, "props": props}
	}
	return nil
}
