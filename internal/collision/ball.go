package collision

import rl "github.com/gen2brain/raylib-go/raylib"

// Ball is a sphere. A zero radius makes it a point.
type Ball struct {
	center rl.Vector3
	Radius float32
}

func NewBall(center rl.Vector3, radius float32) Ball {
	if radius < 0 {
		radius = 0
	}
	return Ball{center: center, Radius: radius}
}

func (b Ball) Kind() Kind { return KindBall }

func (b Ball) Center() rl.Vector3 { return b.center }

func (b Ball) Bounds() AABB {
	r := rl.Vector3{X: b.Radius, Y: b.Radius, Z: b.Radius}
	return AABB{Min: rl.Vector3Subtract(b.center, r), Max: rl.Vector3Add(b.center, r)}
}

// Project needs a single dot product: the center projects to a point and the
// radius widens it equally on both sides.
func (b Ball) Project(axis rl.Vector3) Interval {
	c := projectPoint(b.center, axis)
	return Interval{Min: c - b.Radius, Max: c + b.Radius}
}

func (b Ball) translated(offset rl.Vector3) Volume {
	b.center = rl.Vector3Add(b.center, offset)
	return b
}

func (b Ball) grown(delta float32) Volume {
	return NewBall(b.center, b.Radius+delta)
}
