package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Collision describes a contact from the receiving object's side.
type Collision struct {
	Other *GameObject
	// Normal points from the receiver toward Other.
	Normal rl.Vector3
	Depth  float32
}

// Separation is the move that takes the receiver out of the contact.
func (c Collision) Separation() rl.Vector3 {
	return rl.Vector3Scale(c.Normal, -c.Depth)
}

// CollisionHandler is implemented by components that want to receive collision callbacks.
// Scripts can implement these methods to react to collisions.
type CollisionHandler interface {
	OnCollisionEnter(c Collision)
	OnCollisionExit(other *GameObject)
}

// CollisionStayHandler receives a callback for every tick a contact persists.
type CollisionStayHandler interface {
	OnCollisionStay(c Collision)
}

// ActiveHandler components follow their object being deactivated and
// reactivated.
type ActiveHandler interface {
	OnActiveChanged(active bool)
}

// Destroyable components release resources when their object leaves the scene.
type Destroyable interface {
	OnDestroy()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
