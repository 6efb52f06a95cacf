package physics

import (
	"math"

	"collide3d/internal/collision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Shape    *collision.Shape
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest enabled shape on one of the mask's layers hit
// within maxDistance.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask collision.LayerMask) (RaycastHit, bool) {
	if rl.Vector3Length(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	w.Shapes.Each(func(s *collision.Shape) {
		if !s.Enabled() || !mask.Has(s.Layers()) {
			return
		}

		var hitInfo RaycastHit
		var ok bool
		switch v := s.Volume().(type) {
		case collision.Ball:
			hitInfo, ok = raycastSphere(origin, direction, v, maxDistance)
		case collision.Box:
			hitInfo, ok = raycastBox(origin, direction, v, maxDistance)
		case collision.InverseBox:
			hitInfo, ok = raycastInverseBox(origin, direction, v, maxDistance)
		}
		if ok && hitInfo.Distance < closestHit.Distance {
			closestHit = hitInfo
			closestHit.Shape = s
			hit = true
		}
	})

	return closestHit, hit
}

// slab intersects a ray given in the box's local frame with the box
// [-half, half]. It returns the entry and exit distances and the local axis
// index and sign of the entry face.
func slab(origin, direction, half [3]float32) (tmin, tmax float32, axis int, sign float32, ok bool) {
	tmin, tmax = -1e30, 1e30
	for i := 0; i < 3; i++ {
		if direction[i] == 0 {
			if origin[i] < -half[i] || origin[i] > half[i] {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t1 := (-half[i] - origin[i]) / direction[i]
		t2 := (half[i] - origin[i]) / direction[i]
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
			sign = s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, 0, 0, false
		}
	}
	return tmin, tmax, axis, sign, true
}

func raycastBox(origin, direction rl.Vector3, box collision.Box, maxDistance float32) (RaycastHit, bool) {
	rel := rl.Vector3Subtract(origin, box.Center())
	var localOrigin, localDir [3]float32
	for i, axis := range box.Axes {
		localOrigin[i] = rl.Vector3DotProduct(rel, axis)
		localDir[i] = rl.Vector3DotProduct(direction, axis)
	}
	half := [3]float32{abs(box.HalfSize.X), abs(box.HalfSize.Y), abs(box.HalfSize.Z)}

	tmin, tmax, axis, sign, ok := slab(localOrigin, localDir, half)
	if !ok || tmax < 0 || tmin < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, tmin)),
		Normal:   rl.Vector3Scale(box.Axes[axis], sign),
		Distance: tmin,
	}, true
}

// raycastInverseBox hits the inner wall the ray leaves through. A ray
// starting in the solid outside hits immediately.
func raycastInverseBox(origin, direction rl.Vector3, box collision.InverseBox, maxDistance float32) (RaycastHit, bool) {
	if !box.Bounds().Contains(collision.AABB{Min: origin, Max: origin}) {
		return RaycastHit{Point: origin, Normal: rl.Vector3Negate(direction)}, true
	}

	rel := rl.Vector3Subtract(origin, box.Center())
	localOrigin := [3]float32{rel.X, rel.Y, rel.Z}
	localDir := [3]float32{direction.X, direction.Y, direction.Z}
	half := [3]float32{box.HalfSize.X, box.HalfSize.Y, box.HalfSize.Z}

	_, tmax, _, _, ok := slab(localOrigin, localDir, half)
	if !ok || tmax > maxDistance {
		return RaycastHit{}, false
	}

	// The exit axis is the one whose wall is reached first.
	exit := 0
	best := float32(1e30)
	for i := 0; i < 3; i++ {
		if localDir[i] == 0 {
			continue
		}
		wall := half[i]
		if localDir[i] < 0 {
			wall = -half[i]
		}
		if t := (wall - localOrigin[i]) / localDir[i]; t < best {
			best = t
			exit = i
		}
	}
	var normal [3]float32
	if localDir[exit] > 0 {
		normal[exit] = -1
	} else {
		normal[exit] = 1
	}

	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, tmax)),
		Normal:   rl.Vector3{X: normal[0], Y: normal[1], Z: normal[2]},
		Distance: tmax,
	}, true
}

func raycastSphere(origin, direction rl.Vector3, ball collision.Ball, maxDistance float32) (RaycastHit, bool) {
	center := ball.Center()
	radius := ball.Radius

	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	discriminant := b*b - 4*a*c

	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2.0 * a)
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{
		Point:    point,
		Normal:   normal,
		Distance: t,
	}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
