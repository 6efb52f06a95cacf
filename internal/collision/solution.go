package collision

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SolutionVector is the minimum translation that separates two volumes.
// Direction is a unit vector pointing from the first shape toward the second.
type SolutionVector struct {
	Direction rl.Vector3
	Magnitude float32
}

// Vector returns Direction scaled by Magnitude.
func (s SolutionVector) Vector() rl.Vector3 {
	return rl.Vector3Scale(s.Direction, s.Magnitude)
}

// Separation is the displacement that moves the first shape out of the second.
func (s SolutionVector) Separation() rl.Vector3 {
	return rl.Vector3Scale(s.Direction, -s.Magnitude)
}

// Negate flips the direction, describing the pair from the other side.
func (s SolutionVector) Negate() SolutionVector {
	return SolutionVector{Direction: rl.Vector3Negate(s.Direction), Magnitude: s.Magnitude}
}

func (s SolutionVector) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f) x %.3f", s.Direction.X, s.Direction.Y, s.Direction.Z, s.Magnitude)
}

// CollisionInformation is the result of one narrow-phase test. CollidingShape
// is the zero handle when the shapes do not overlap.
type CollisionInformation struct {
	Shape          Handle
	CollidingShape Handle
	SolutionVector SolutionVector
}

// Collided reports whether the test found an overlap.
func (i CollisionInformation) Collided() bool {
	return i.CollidingShape != NoHandle
}
