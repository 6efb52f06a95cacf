package collision

import rl "github.com/gen2brain/raylib-go/raylib"

// Owner is the simulated object a shape is attached to. It supplies the pose
// the shape is synced from and receives the lifecycle callbacks.
type Owner interface {
	Position() rl.Vector3
	// Size is the declared nominal size the shape derives its extents from.
	Size() rl.Vector3
	OnCollisionEnter(info CollisionInformation)
	OnCollisionUpdate(info CollisionInformation)
	OnCollisionExit(formerlyColliding *Shape)
}

// Oriented is implemented by owners that also carry rotation (euler degrees)
// and scale.
type Oriented interface {
	Rotation() rl.Vector3
	Scale() rl.Vector3
}

// Displacer is implemented by owners that follow their shape when a
// collision is resolved.
type Displacer interface {
	Displace(offset rl.Vector3)
}
