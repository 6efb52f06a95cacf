package engine

import (
	"math"
	"slices"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a local pose. Rotation is euler degrees applied X, then Y,
// then Z, the same order collision boxes use.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

func IdentityTransform() Transform {
	return Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

func (t Transform) RotationMatrix() rl.Matrix {
	rx := rl.MatrixRotateX(float32(float64(t.Rotation.X) * math.Pi / 180))
	ry := rl.MatrixRotateY(float32(float64(t.Rotation.Y) * math.Pi / 180))
	rz := rl.MatrixRotateZ(float32(float64(t.Rotation.Z) * math.Pi / 180))
	return rl.MatrixMultiply(rl.MatrixMultiply(rx, ry), rz)
}

// Apply maps a point from this transform's local space to its parent space.
func (t Transform) Apply(local rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(local, t.Scale)
	return rl.Vector3Add(t.Position, rl.Vector3Transform(scaled, t.RotationMatrix()))
}

// Compose returns child expressed in this transform's parent space. Rotations
// are summed, which is exact for the single-axis spins the scenes use.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Apply(child.Position),
		Rotation: rl.Vector3Add(t.Rotation, child.Rotation),
		Scale:    rl.Vector3Multiply(t.Scale, child.Scale),
	}
}

var nextUID atomic.Uint64

type GameObject struct {
	UID       uint64
	Name      string
	Tags      []string
	Transform Transform
	Active    bool
	Scene     *Scene
	Parent    *GameObject
	Children  []*GameObject

	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:       nextUID.Add(1),
		Name:      name,
		Active:    true,
		Transform: IdentityTransform(),
	}
}

// ReserveUID makes sure generated UIDs never collide with uid, for objects
// restored with a saved UID.
func ReserveUID(uid uint64) {
	for {
		cur := nextUID.Load()
		if cur >= uid || nextUID.CompareAndSwap(cur, uid) {
			return
		}
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or its zero value.
func GetComponent[T any](g *GameObject) T {
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	var zero T
	return zero
}

// GetComponents returns every component implementing T, in insertion order.
func GetComponents[T any](g *GameObject) []T {
	var out []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

// SetActive stops or resumes updates. ActiveHandler components on the object
// and its children hear about it; a collider uses this to disable its shape.
func (g *GameObject) SetActive(active bool) {
	if g.Active == active {
		return
	}
	g.Active = active
	g.notifyActive(active)
}

func (g *GameObject) notifyActive(active bool) {
	for _, h := range GetComponents[ActiveHandler](g) {
		h.OnActiveChanged(active)
	}
	for _, child := range g.Children {
		if child.Active {
			child.notifyActive(active)
		}
	}
}

// ActiveInHierarchy is false if the object or any ancestor is inactive.
func (g *GameObject) ActiveInHierarchy() bool {
	for o := g; o != nil; o = o.Parent {
		if !o.Active {
			return false
		}
	}
	return true
}

// destroy notifies Destroyable components, children first.
func (g *GameObject) destroy() {
	for _, child := range g.Children {
		child.destroy()
	}
	for _, d := range GetComponents[Destroyable](g) {
		d.OnDestroy()
	}
}

func (g *GameObject) HasTag(tag string) bool {
	return slices.Contains(g.Tags, tag)
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	if i := slices.Index(g.Children, child); i >= 0 {
		g.Children = slices.Delete(g.Children, i, i+1)
		child.Parent = nil
	}
}

// WorldTransform composes the transforms from the root down to g.
func (g *GameObject) WorldTransform() Transform {
	if g.Parent == nil {
		return g.Transform
	}
	return g.Parent.WorldTransform().Compose(g.Transform)
}

func (g *GameObject) WorldPosition() rl.Vector3 { return g.WorldTransform().Position }

func (g *GameObject) WorldRotation() rl.Vector3 { return g.WorldTransform().Rotation }

func (g *GameObject) WorldScale() rl.Vector3 { return g.WorldTransform().Scale }
