package debugdraw

import (
	"collide3d/internal/collision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ColorIdle         = rl.Lime
	ColorColliding    = rl.Red
	ColorImpenetrable = rl.Orange
	ColorDisabled     = rl.Gray
	ColorSelected     = rl.SkyBlue
	ColorSolution     = rl.Yellow
)

// boxEdges pairs corner indices of collision.Box.Corners that differ in one
// axis bit.
var boxEdges = func() [][2]int {
	var edges [][2]int
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}()

// ColorFor picks a wireframe color from the shape's state.
func ColorFor(s *collision.Shape) rl.Color {
	switch {
	case !s.Enabled():
		return ColorDisabled
	case s.ImpenetrableCount() > 0:
		return ColorImpenetrable
	case len(s.CollidingShapes()) > 0:
		return ColorColliding
	}
	return ColorIdle
}

// Shape draws the shape's wireframe. Must be called between BeginMode3D and
// EndMode3D.
func Shape(s *collision.Shape, color rl.Color) {
	switch v := s.Volume().(type) {
	case collision.Ball:
		rl.DrawSphereWires(v.Center(), v.Radius, 8, 12, color)
	case collision.Box:
		corners := v.Corners()
		for _, e := range boxEdges {
			rl.DrawLine3D(corners[e[0]], corners[e[1]], color)
		}
	case collision.InverseBox:
		b := v.Bounds()
		rl.DrawBoundingBox(b.BoundingBox(), color)
	}
}

// Bounds draws the shape's axis-aligned bounding box.
func Bounds(s *collision.Shape, color rl.Color) {
	rl.DrawBoundingBox(s.RightBox().BoundingBox(), color)
}

// Solutions draws each registered contact's solution vector from the shape's
// center.
func Solutions(s *collision.Shape) {
	from := s.Volume().Center()
	for _, h := range s.CollidingShapes() {
		entry, ok := s.CollidingShape(h)
		if !ok {
			continue
		}
		to := rl.Vector3Add(from, solutionTip(entry.SolutionVector))
		rl.DrawLine3D(from, to, ColorSolution)
		rl.DrawSphere(to, 0.05, ColorSolution)
	}
}

// solutionTip scales short vectors up so resting contacts stay visible.
func solutionTip(v collision.SolutionVector) rl.Vector3 {
	length := v.Magnitude
	if length < 0.25 {
		length = 0.25
	}
	return rl.Vector3Scale(v.Direction, length)
}

// World draws every shape, highlighting selected.
func World(shapes *collision.Pool, selected collision.Handle, showSolutions bool) {
	shapes.Each(func(s *collision.Shape) {
		color := ColorFor(s)
		if s.Handle() == selected {
			color = ColorSelected
			Bounds(s, rl.Fade(ColorSelected, 0.4))
		}
		Shape(s, color)
		if showSolutions {
			Solutions(s)
		}
	})
}
