package components

import (
	"fmt"
	"log"

	"collide3d/internal/collision"
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Collider", func() engine.Serializable {
		return NewCollider(collision.KindBox, rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

// Collider gives a GameObject a collision shape. The shape follows the
// object's world transform and its lifecycle callbacks reach every
// CollisionHandler on the object.
type Collider struct {
	engine.BaseComponent
	Kind    collision.Kind
	Extents rl.Vector3 // full size before object scale
	Offset  rl.Vector3

	Layers             collision.LayerMask
	IgnoreLayers       collision.LayerMask
	Friction           float32
	CheckForCollisions bool
	RegisterCollisions bool

	OnEnter  engine.EventWithArg[engine.Collision]
	OnUpdate engine.EventWithArg[engine.Collision]
	OnExit   engine.EventWithArg[*engine.GameObject]

	world engine.WorldAccess
	shape *collision.Shape
}

func NewCollider(kind collision.Kind, extents rl.Vector3) *Collider {
	return &Collider{
		Kind:               kind,
		Extents:            extents,
		Layers:             collision.LayerDefault,
		CheckForCollisions: true,
		RegisterCollisions: true,
	}
}

// NewBallCollider creates a ball of the given radius.
func NewBallCollider(radius float32) *Collider {
	d := radius * 2
	return NewCollider(collision.KindBall, rl.Vector3{X: d, Y: d, Z: d})
}

func (c *Collider) Start() {
	g := c.GetGameObject()
	if c.shape != nil || g == nil || g.Scene == nil || g.Scene.World == nil {
		return
	}
	c.world = g.Scene.World
	c.shape = c.world.AddShape(c.Kind, c)
	c.Apply()
	c.shape.Enable(g.ActiveInHierarchy())
}

// OnActiveChanged implements engine.ActiveHandler. A disabled shape keeps its
// contacts until it is tested again.
func (c *Collider) OnActiveChanged(active bool) {
	if c.shape != nil {
		c.shape.Enable(active && c.GetGameObject().ActiveInHierarchy())
	}
}

// Apply pushes the exported settings to the live shape.
func (c *Collider) Apply() {
	if c.shape == nil {
		return
	}
	c.shape.Setup(c.Layers, c.IgnoreLayers)
	c.shape.SetFrictionCoefficient(c.Friction)
	c.shape.SetCheckForCollisions(c.CheckForCollisions)
	c.shape.RegisterCollisions(c.RegisterCollisions)
	c.shape.Sync()
}

func (c *Collider) OnDestroy() {
	if c.shape == nil {
		return
	}
	c.world.RemoveShape(c.shape)
	c.shape = nil
}

// Shape returns the live shape, or nil before Start and after removal.
func (c *Collider) Shape() *collision.Shape {
	return c.shape
}

// Contacts returns the objects currently registered as touching.
func (c *Collider) Contacts() []*engine.GameObject {
	if c.shape == nil {
		return nil
	}
	var out []*engine.GameObject
	for _, h := range c.shape.CollidingShapes() {
		if other := c.objectOf(h); other != nil {
			out = append(out, other)
		}
	}
	return out
}

// Position implements collision.Owner
func (c *Collider) Position() rl.Vector3 {
	return rl.Vector3Add(c.GetGameObject().WorldPosition(), c.Offset)
}

// Size implements collision.Owner
func (c *Collider) Size() rl.Vector3 {
	return c.Extents
}

func (c *Collider) Rotation() rl.Vector3 {
	return c.GetGameObject().WorldRotation()
}

func (c *Collider) Scale() rl.Vector3 {
	return c.GetGameObject().WorldScale()
}

// Displace implements collision.Displacer
func (c *Collider) Displace(offset rl.Vector3) {
	g := c.GetGameObject()
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, offset)
}

func (c *Collider) objectOf(h collision.Handle) *engine.GameObject {
	s, ok := c.world.Shape(h)
	if !ok {
		return nil
	}
	other, ok := s.Owner().(*Collider)
	if !ok {
		return nil
	}
	return other.GetGameObject()
}

// resolves reports whether contacts should push this object out: only
// dynamic rigidbodies are moved.
func (c *Collider) resolves() bool {
	rb := engine.GetComponent[*Rigidbody](c.GetGameObject())
	return rb != nil && !rb.IsKinematic
}

func (c *Collider) OnCollisionEnter(info collision.CollisionInformation) {
	other := c.objectOf(info.CollidingShape)
	if other == nil || c.shape == nil {
		return
	}
	if c.resolves() {
		c.shape.ResolveCollision(info, true)
	}

	col := engine.Collision{Other: other, Normal: info.SolutionVector.Direction, Depth: info.SolutionVector.Magnitude}
	for _, comp := range c.GetGameObject().Components() {
		if h, ok := comp.(engine.CollisionHandler); ok {
			h.OnCollisionEnter(col)
		}
	}
	c.OnEnter.Invoke(col)
}

func (c *Collider) OnCollisionUpdate(info collision.CollisionInformation) {
	other := c.objectOf(info.CollidingShape)
	if other == nil || c.shape == nil {
		return
	}
	// Registered impenetrable contacts are retested grown by the contact
	// margin, so a resting body reports about that depth here.
	if c.resolves() && info.SolutionVector.Magnitude > 2*c.world.ContactMargin() {
		c.shape.ResolveCollision(info, true)
	}

	col := engine.Collision{Other: other, Normal: info.SolutionVector.Direction, Depth: info.SolutionVector.Magnitude}
	for _, comp := range c.GetGameObject().Components() {
		if h, ok := comp.(engine.CollisionStayHandler); ok {
			h.OnCollisionStay(col)
		}
	}
	c.OnUpdate.Invoke(col)
}

func (c *Collider) OnCollisionExit(s *collision.Shape) {
	var other *engine.GameObject
	if oc, ok := s.Owner().(*Collider); ok {
		other = oc.GetGameObject()
	}
	for _, comp := range c.GetGameObject().Components() {
		if h, ok := comp.(engine.CollisionHandler); ok {
			h.OnCollisionExit(other)
		}
	}
	c.OnExit.Invoke(other)
}

// TypeName implements engine.Serializable
func (c *Collider) TypeName() string {
	return "Collider"
}

// Serialize implements engine.Serializable
func (c *Collider) Serialize() map[string]any {
	return map[string]any{
		"type":               "Collider",
		"kind":               c.Kind.String(),
		"size":               vectorProp(c.Extents),
		"offset":             vectorProp(c.Offset),
		"layers":             float64(c.Layers),
		"ignoreLayers":       float64(c.IgnoreLayers),
		"friction":           float64(c.Friction),
		"checkForCollisions": c.CheckForCollisions,
		"registerCollisions": c.RegisterCollisions,
	}
}

// Deserialize implements engine.Serializable
func (c *Collider) Deserialize(data map[string]any) error {
	if name, ok := data["kind"].(string); ok {
		kind, err := collision.ParseKind(name)
		if err != nil {
			return fmt.Errorf("collider: %w", err)
		}
		c.Kind = kind
	}

	var err error
	if c.Extents, err = propVector(data, "size", c.Extents); err != nil {
		return fmt.Errorf("collider: %w", err)
	}
	if c.Offset, err = propVector(data, "offset", c.Offset); err != nil {
		return fmt.Errorf("collider: %w", err)
	}

	if v, ok := data["layers"].(float64); ok {
		c.Layers = collision.LayerMask(v)
	}
	if v, ok := data["ignoreLayers"].(float64); ok {
		c.IgnoreLayers = collision.LayerMask(v)
	}
	c.Friction = propFloat(data, "friction", c.Friction)
	c.CheckForCollisions = propBool(data, "checkForCollisions", c.CheckForCollisions)
	c.RegisterCollisions = propBool(data, "registerCollisions", c.RegisterCollisions)

	if c.Friction < 0 {
		log.Printf("Scene: collider friction %v clamped to 0", c.Friction)
		c.Friction = 0
	}
	return nil
}
