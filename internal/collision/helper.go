package collision

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// minAxisLength below which a candidate axis is treated as degenerate.
const minAxisLength = 1e-6

// parallelEdgeLength is the cross product length below which two box edges
// count as parallel and give no axis.
const parallelEdgeLength = 1e-4

type pairTester func(a, b Volume) (SolutionVector, bool)

// pairTesters holds one routine per kind pair with a.Kind() <= b.Kind().
// The lower triangle is reached by swapping the arguments.
var pairTesters = [kindCount][kindCount]pairTester{
	KindBall: {
		KindBall:       testBallBall,
		KindBox:        testBallBox,
		KindInverseBox: testInsideInverseBox,
	},
	KindBox: {
		KindBox:        testBoxBox,
		KindInverseBox: testInsideInverseBox,
	},
	KindInverseBox: {
		KindInverseBox: testInverseBoxInverseBox,
	},
}

// CheckIfOverlap tests two shapes at their current pose. The solution vector
// points from a toward b whichever shape is passed first.
func CheckIfOverlap(a, b *Shape) CollisionInformation {
	return checkVolumes(a.handle, a.volume, b.handle, b.volume)
}

// checkVolumes runs the pair routine in canonical order (kind, then handle)
// and flips the result back when the caller's order was the other one. This
// keeps both observers of a pair on exactly opposite vectors.
func checkVolumes(ha Handle, va Volume, hb Handle, vb Volume) CollisionInformation {
	swapped := va.Kind() > vb.Kind() || (va.Kind() == vb.Kind() && ha > hb)
	first, second := va, vb
	if swapped {
		first, second = vb, va
	}

	solution, ok := pairTesters[first.Kind()][second.Kind()](first, second)
	if !ok {
		return CollisionInformation{Shape: ha}
	}
	if swapped {
		solution = solution.Negate()
	}
	return CollisionInformation{Shape: ha, CollidingShape: hb, SolutionVector: solution}
}

// separatingAxisTest projects both volumes on every axis. Any gap rejects
// immediately; otherwise the axis with the smallest penetration wins, keeping
// the first one on a tie.
func separatingAxisTest(a, b Volume, axes []rl.Vector3) (SolutionVector, bool) {
	var solution SolutionVector
	minPenetration := float32(math.MaxFloat32)

	for _, axis := range axes {
		ia := a.Project(axis)
		ib := b.Project(axis)
		if !ia.Overlaps(ib) {
			return SolutionVector{}, false
		}

		depth, sign := ia.penetration(ib)
		if depth < minPenetration {
			minPenetration = depth
			solution = SolutionVector{Direction: rl.Vector3Scale(axis, sign), Magnitude: depth}
		}
	}

	if minPenetration == math.MaxFloat32 {
		return SolutionVector{}, false
	}
	return solution, true
}

// centerAxis is the unit axis from a to b, or +X when the centers coincide.
func centerAxis(a, b rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(b, a)
	if rl.Vector3Length(d) < minAxisLength {
		return worldAxes[0]
	}
	return rl.Vector3Normalize(d)
}

func testBallBall(a, b Volume) (SolutionVector, bool) {
	axis := centerAxis(a.Center(), b.Center())
	return separatingAxisTest(a, b, []rl.Vector3{axis})
}

// testBallBox tries the center axis, the box face normals and the axis toward
// the closest point on the box, which separates balls sitting off a corner.
func testBallBox(a, b Volume) (SolutionVector, bool) {
	ball := a.(Ball)
	box := b.(Box)
	if !ball.Bounds().Intersects(box.Bounds()) {
		return SolutionVector{}, false
	}

	axes := make([]rl.Vector3, 0, 5)
	axes = append(axes, centerAxis(ball.center, box.center))
	axes = append(axes, box.Axes[:]...)

	closest := box.ClosestPoint(ball.center)
	if d := rl.Vector3Subtract(closest, ball.center); rl.Vector3Length(d) > minAxisLength {
		axes = append(axes, rl.Vector3Normalize(d))
	}
	return separatingAxisTest(ball, box, axes)
}

func testBoxBox(a, b Volume) (SolutionVector, bool) {
	boxA := a.(Box)
	boxB := b.(Box)
	if !boxA.Bounds().Intersects(boxB.Bounds()) {
		return SolutionVector{}, false
	}

	axes := make([]rl.Vector3, 0, 15)
	axes = append(axes, boxA.Axes[:]...)
	if boxA.Rotated() || boxB.Rotated() {
		axes = append(axes, boxB.Axes[:]...)
		// Edge pairs come last so a face normal wins a tie.
		for _, ea := range boxA.Axes {
			for _, eb := range boxB.Axes {
				axis := rl.Vector3CrossProduct(ea, eb)
				if rl.Vector3Length(axis) > parallelEdgeLength {
					axes = append(axes, rl.Vector3Normalize(axis))
				}
			}
		}
	}
	return separatingAxisTest(boxA, boxB, axes)
}

// testInsideInverseBox reports a collision when a's bounds are not fully
// contained by the inverse box b. The solution picks the axis where a escapes
// furthest and points at the crossed boundary, so moving a along -direction
// brings it back inside.
func testInsideInverseBox(a, b Volume) (SolutionVector, bool) {
	inner := a.Bounds()
	outer := b.Bounds()

	var solution SolutionVector
	var escape float32
	for i := 0; i < 3; i++ {
		innerMin, innerMax := inner.component(i)
		outerMin, outerMax := outer.component(i)

		if d := innerMax - outerMax; d > escape {
			escape = d
			solution = SolutionVector{Direction: worldAxes[i], Magnitude: d}
		}
		if d := outerMin - innerMin; d > escape {
			escape = d
			solution = SolutionVector{Direction: rl.Vector3Negate(worldAxes[i]), Magnitude: d}
		}
	}
	return solution, escape > 0
}

// Two inverse boxes are both unbounded outside; there is nothing to resolve.
func testInverseBoxInverseBox(a, b Volume) (SolutionVector, bool) {
	return SolutionVector{}, false
}
