package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyCamera is a free-flying inspection camera: WASD moves on the look
// plane, Space and LeftShift move vertically, the right mouse button looks.
type FlyCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
}

// Input is one frame of movement intent, each axis in [-1, 1].
type Input struct {
	Forward, Right, Up float32
	Look               rl.Vector2
}

func New(pos rl.Vector3) *FlyCamera {
	return &FlyCamera{
		Position:  pos,
		Yaw:       -135.0,
		Pitch:     -30.0,
		MoveSpeed: 12.0, // Units per second
		LookSpeed: 0.1,
	}
}

// Update reads raylib input and moves the camera.
func (c *FlyCamera) Update(deltaTime float32) {
	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	if rl.IsKeyDown(rl.KeySpace) {
		in.Up++
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		in.Up--
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		in.Look = rl.GetMouseDelta()
	}
	c.Move(in, deltaTime)
}

func (c *FlyCamera) Move(in Input, deltaTime float32) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch -= in.Look.Y * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	forward := c.Forward()
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1}))

	moveDir := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))
	moveDir.Y += in.Up

	// Normalize diagonal movement so you don't go faster diagonally
	if rl.Vector3Length(moveDir) > 1 {
		moveDir = rl.Vector3Normalize(moveDir)
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(moveDir, c.MoveSpeed*deltaTime))
}

// Forward is the unit look direction.
func (c *FlyCamera) Forward() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

func (c *FlyCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
