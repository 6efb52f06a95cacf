package engine

import (
	"collide3d/internal/collision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	AddShape(kind collision.Kind, owner collision.Owner) *collision.Shape
	RemoveShape(s *collision.Shape)
	Shape(h collision.Handle) (*collision.Shape, bool)
	ContactMargin() float32
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask collision.LayerMask) (RaycastResult, bool)
}
