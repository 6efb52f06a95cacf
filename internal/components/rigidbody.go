package components

import (
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

const (
	Gravity = 9.81
	// FrictionScale converts a contact friction coefficient into velocity
	// loss per second.
	FrictionScale = 10
	// Below this speed a blocked axis stops instead of bouncing.
	BounceThreshold = 1.0
)

// Rigidbody integrates velocity and asks the object's Collider whether each
// step is clear of the contacts it is resting against.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Bounciness      float32    // 0 = no bounce, 1 = perfect bounce
	AngularDamping  float32    // how fast rotation slows down
	UseGravity      bool
	IsKinematic     bool // moves but doesn't get pushed by physics

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32 // time spent below velocity threshold
	CanSleep   bool    // whether this object can sleep (default true)
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Bounciness:     0.5,
		AngularDamping: 0.98, // slight damping each frame
		UseGravity:     true,
		CanSleep:       true,
	}
}

func (r *Rigidbody) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil || r.IsKinematic || r.IsSleeping || deltaTime <= 0 {
		return
	}

	if r.UseGravity {
		r.Velocity.Y -= Gravity * deltaTime
	}

	step := rl.Vector3Scale(r.Velocity, deltaTime)
	if col := engine.GetComponent[*Collider](g); col != nil && col.Shape() != nil {
		shape := col.Shape()
		if !shape.CanMoveTowards(step, 0) {
			if r.block(shape.CanMoveTowards, step) {
				r.applyFriction(shape.CollidingFrictionCoefficient(), deltaTime)
			}
			step = rl.Vector3Scale(r.Velocity, deltaTime)
		}
	}

	g.Transform.Position = rl.Vector3Add(g.Transform.Position, step)

	g.Transform.Rotation = rl.Vector3Add(g.Transform.Rotation, rl.Vector3Scale(r.AngularVelocity, deltaTime))
	r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, r.AngularDamping)

	r.TrySleep(deltaTime)
}

// block zeroes or reflects each velocity axis whose step alone is refused.
// It reports whether the vertical axis was blocked.
func (r *Rigidbody) block(canMove func(rl.Vector3, float32) bool, step rl.Vector3) bool {
	axes := []struct {
		step rl.Vector3
		v    *float32
	}{
		{rl.Vector3{X: step.X}, &r.Velocity.X},
		{rl.Vector3{Y: step.Y}, &r.Velocity.Y},
		{rl.Vector3{Z: step.Z}, &r.Velocity.Z},
	}

	grounded := false
	for i, axis := range axes {
		if canMove(axis.step, 0) {
			continue
		}
		if i == 1 {
			grounded = true
		}
		if abs(*axis.v) > BounceThreshold {
			*axis.v = -*axis.v * r.Bounciness
		} else {
			*axis.v = 0
		}
	}
	return grounded
}

func (r *Rigidbody) applyFriction(mu, deltaTime float32) {
	keep := 1 - mu*FrictionScale*deltaTime
	if keep < 0 {
		keep = 0
	}
	r.Velocity.X *= keep
	r.Velocity.Z *= keep
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Apply extra damping when nearly at rest to reduce jitter
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}

// OnCollisionEnter wakes the body when something hits it.
func (r *Rigidbody) OnCollisionEnter(c engine.Collision) {
	r.Wake()
}

func (r *Rigidbody) OnCollisionExit(other *engine.GameObject) {
	r.Wake()
}

// TypeName implements engine.Serializable
func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

// Serialize implements engine.Serializable
func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"type":        "Rigidbody",
		"velocity":    vectorProp(r.Velocity),
		"bounciness":  float64(r.Bounciness),
		"useGravity":  r.UseGravity,
		"isKinematic": r.IsKinematic,
		"canSleep":    r.CanSleep,
	}
}

// Deserialize implements engine.Serializable
func (r *Rigidbody) Deserialize(data map[string]any) error {
	var err error
	if r.Velocity, err = propVector(data, "velocity", r.Velocity); err != nil {
		return err
	}
	r.Bounciness = propFloat(data, "bounciness", r.Bounciness)
	r.UseGravity = propBool(data, "useGravity", r.UseGravity)
	r.IsKinematic = propBool(data, "isKinematic", r.IsKinematic)
	r.CanSleep = propBool(data, "canSleep", r.CanSleep)
	return nil
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
