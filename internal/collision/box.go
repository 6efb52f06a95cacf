package collision

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Box is an oriented box: a center, half extents along its local axes and
// the three rotated axes themselves, which double as its face normals.
type Box struct {
	center   rl.Vector3
	HalfSize rl.Vector3
	Axes     [3]rl.Vector3
}

var worldAxes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// NewBox creates a box from center, full size and euler rotation in degrees,
// applied X then Y then Z.
func NewBox(center, size, rotation rl.Vector3) Box {
	b := Box{
		center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes:     worldAxes,
	}
	if rotation == (rl.Vector3{}) {
		return b
	}

	rx := float64(rotation.X) * math.Pi / 180
	ry := float64(rotation.Y) * math.Pi / 180
	rz := float64(rotation.Z) * math.Pi / 180
	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	m := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	b.Axes = [3]rl.Vector3{
		rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
		rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
		rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
	}
	return b
}

func (b Box) Kind() Kind { return KindBox }

func (b Box) Center() rl.Vector3 { return b.center }

// Rotated reports whether the box axes differ from the world axes.
func (b Box) Rotated() bool {
	return b.Axes != worldAxes
}

func (b Box) Bounds() AABB {
	ext := rl.Vector3{
		X: b.HalfSize.X*absf(b.Axes[0].X) + b.HalfSize.Y*absf(b.Axes[1].X) + b.HalfSize.Z*absf(b.Axes[2].X),
		Y: b.HalfSize.X*absf(b.Axes[0].Y) + b.HalfSize.Y*absf(b.Axes[1].Y) + b.HalfSize.Z*absf(b.Axes[2].Y),
		Z: b.HalfSize.X*absf(b.Axes[0].Z) + b.HalfSize.Y*absf(b.Axes[1].Z) + b.HalfSize.Z*absf(b.Axes[2].Z),
	}
	return AABB{Min: rl.Vector3Subtract(b.center, ext), Max: rl.Vector3Add(b.center, ext)}
}

// Project uses the projected half extents instead of walking the 8 corners.
func (b Box) Project(axis rl.Vector3) Interval {
	c := projectPoint(b.center, axis)
	r := b.HalfSize.X*absf(rl.Vector3DotProduct(b.Axes[0], axis)) +
		b.HalfSize.Y*absf(rl.Vector3DotProduct(b.Axes[1], axis)) +
		b.HalfSize.Z*absf(rl.Vector3DotProduct(b.Axes[2], axis))
	return Interval{Min: c - r, Max: c + r}
}

// Corners returns the 8 vertices in world space.
func (b Box) Corners() [8]rl.Vector3 {
	x := rl.Vector3Scale(b.Axes[0], b.HalfSize.X)
	y := rl.Vector3Scale(b.Axes[1], b.HalfSize.Y)
	z := rl.Vector3Scale(b.Axes[2], b.HalfSize.Z)
	var corners [8]rl.Vector3
	for i := range corners {
		p := b.center
		p = addSigned(p, x, i&1 != 0)
		p = addSigned(p, y, i&2 != 0)
		p = addSigned(p, z, i&4 != 0)
		corners[i] = p
	}
	return corners
}

func addSigned(p, v rl.Vector3, positive bool) rl.Vector3 {
	if positive {
		return rl.Vector3Add(p, v)
	}
	return rl.Vector3Subtract(p, v)
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(p, b.center)
	half := [3]float32{b.HalfSize.X, b.HalfSize.Y, b.HalfSize.Z}
	result := b.center
	for i, axis := range b.Axes {
		d := clampf(rl.Vector3DotProduct(local, axis), -half[i], half[i])
		result = rl.Vector3Add(result, rl.Vector3Scale(axis, d))
	}
	return result
}

func (b Box) translated(offset rl.Vector3) Volume {
	b.center = rl.Vector3Add(b.center, offset)
	return b
}

func (b Box) grown(delta float32) Volume {
	b.HalfSize = growHalf(b.HalfSize, delta)
	return b
}

func growHalf(h rl.Vector3, delta float32) rl.Vector3 {
	h = rl.Vector3AddValue(h, delta)
	return rl.Vector3Max(h, rl.Vector3Zero())
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
