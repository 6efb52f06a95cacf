package collision

import rl "github.com/gen2brain/raylib-go/raylib"

// InverseBox is the outside of an axis-aligned box, used for level bounds:
// anything not fully inside it is colliding. Rotation is ignored.
type InverseBox struct {
	center   rl.Vector3
	HalfSize rl.Vector3
}

func NewInverseBox(center, size rl.Vector3) InverseBox {
	return InverseBox{
		center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
	}
}

func (b InverseBox) Kind() Kind { return KindInverseBox }

func (b InverseBox) Center() rl.Vector3 { return b.center }

// Bounds is the enclosed region. The solid part extends to infinity, so
// broad phases must not cull against it.
func (b InverseBox) Bounds() AABB {
	return AABB{Min: rl.Vector3Subtract(b.center, b.HalfSize), Max: rl.Vector3Add(b.center, b.HalfSize)}
}

func (b InverseBox) Project(axis rl.Vector3) Interval {
	c := projectPoint(b.center, axis)
	r := b.HalfSize.X*absf(axis.X) + b.HalfSize.Y*absf(axis.Y) + b.HalfSize.Z*absf(axis.Z)
	return Interval{Min: c - r, Max: c + r}
}

func (b InverseBox) translated(offset rl.Vector3) Volume {
	b.center = rl.Vector3Add(b.center, offset)
	return b
}

func (b InverseBox) grown(delta float32) Volume {
	b.HalfSize = growHalf(b.HalfSize, delta)
	return b
}
