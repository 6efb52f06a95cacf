package collision

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box in world units. Shapes keep one as their
// rightBox for coarse rejection.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Intersects uses closed intervals, so touching boxes count.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether b lies inside a, faces included.
func (a AABB) Contains(b AABB) bool {
	return b.Min.X >= a.Min.X && b.Max.X <= a.Max.X &&
		b.Min.Y >= a.Min.Y && b.Max.Y <= a.Max.Y &&
		b.Min.Z >= a.Min.Z && b.Max.Z <= a.Max.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Expand grows the box by delta on every side.
func (a AABB) Expand(delta float32) AABB {
	d := rl.Vector3{X: delta, Y: delta, Z: delta}
	return AABB{Min: rl.Vector3Subtract(a.Min, d), Max: rl.Vector3Add(a.Max, d)}
}

// Translate moves the box by offset.
func (a AABB) Translate(offset rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Add(a.Min, offset), Max: rl.Vector3Add(a.Max, offset)}
}

// BoundingBox converts to raylib's type for drawing.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}

// component returns the min and max on axis i (0=X, 1=Y, 2=Z).
func (a AABB) component(i int) (float32, float32) {
	switch i {
	case 0:
		return a.Min.X, a.Max.X
	case 1:
		return a.Min.Y, a.Max.Y
	default:
		return a.Min.Z, a.Max.Z
	}
}
