package debugdraw

import (
	"fmt"

	"collide3d/internal/collision"
	"collide3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	rowHeight   = 22
	listRows    = 12
	panelMargin = 8
)

var (
	colorPanel = rl.NewColor(24, 24, 32, 230)
	colorText  = rl.NewColor(220, 220, 230, 255)
	colorDim   = rl.NewColor(140, 140, 160, 255)
)

// Inspector is a raygui side panel listing shapes and showing the selected
// shape's state and contacts. Its toggles edit the shape directly.
type Inspector struct {
	Bounds   rl.Rectangle
	Selected collision.Handle
	first    int // first visible row
}

func NewInspector(x, y, width, height float32) *Inspector {
	return &Inspector{Bounds: rl.Rectangle{X: x, Y: y, Width: width, Height: height}}
}

// Style applies the panel colors to raygui.
func Style() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// Scroll moves the list by rows, clamped to the shape count.
func (in *Inspector) Scroll(rows, total int) {
	in.first += rows
	if in.first > total-listRows {
		in.first = total - listRows
	}
	if in.first < 0 {
		in.first = 0
	}
}

func (in *Inspector) Draw(w *physics.World) {
	b := in.Bounds
	rl.DrawRectangleRec(b, colorPanel)

	x := int32(b.X) + panelMargin
	y := int32(b.Y) + panelMargin
	width := b.Width - 2*panelMargin

	for _, line := range StatsLines(w) {
		rl.DrawText(line, x, y, 14, colorDim)
		y += 18
	}
	y += 4

	shapes := w.Shapes.Shapes()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && rl.CheckCollisionPointRec(rl.GetMousePosition(), b) {
		in.Scroll(-int(wheel), len(shapes))
	}
	end := min(in.first+listRows, len(shapes))
	for _, s := range shapes[in.first:end] {
		label := fmt.Sprintf("%v %v", s.Kind(), s.Handle())
		if s.Handle() == in.Selected {
			label = "> " + label
		}
		row := rl.Rectangle{X: float32(x), Y: float32(y), Width: width, Height: rowHeight - 2}
		if gui.Button(row, label) {
			in.Selected = s.Handle()
		}
		y += rowHeight
	}
	y += 6

	s, ok := w.Shapes.Get(in.Selected)
	if !ok {
		rl.DrawText("no shape selected", x, y, 14, colorDim)
		return
	}
	in.drawShape(s, x, y, width)
}

func (in *Inspector) drawShape(s *collision.Shape, x, y int32, width float32) {
	for _, line := range Lines(s) {
		rl.DrawText(line, x, y, 14, colorText)
		y += 18
	}
	y += 4

	box := func(dy int32) rl.Rectangle {
		return rl.Rectangle{X: float32(x), Y: float32(y + dy), Width: 16, Height: 16}
	}
	if v := gui.CheckBox(box(0), "Enabled", s.Enabled()); v != s.Enabled() {
		s.Enable(v)
	}
	if v := gui.CheckBox(box(rowHeight), "Check for collisions", s.ChecksForCollisions()); v != s.ChecksForCollisions() {
		s.SetCheckForCollisions(v)
	}
	if v := gui.CheckBox(box(2*rowHeight), "Register collisions", s.RegistersCollisions()); v != s.RegistersCollisions() {
		s.RegisterCollisions(v)
	}
	y += 3 * rowHeight

	slider := rl.Rectangle{X: float32(x) + 60, Y: float32(y), Width: width - 110, Height: 16}
	friction := gui.Slider(slider, "Friction", fmt.Sprintf("%.2f", s.FrictionCoefficient()), s.FrictionCoefficient(), 0, 1)
	if friction != s.FrictionCoefficient() {
		s.SetFrictionCoefficient(friction)
	}
	y += rowHeight

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 90, Height: rowHeight - 2}, "Reset") {
		s.Reset()
	}
}

// StatsLines summarizes the last tick's broad-phase counters.
func StatsLines(w *physics.World) []string {
	st := w.Stats()
	return []string{
		fmt.Sprintf("tick %d  shapes %d", w.Tick(), st.Shapes),
		fmt.Sprintf("products %d  checks %d", st.Products, st.Checks),
		fmt.Sprintf("collisions %d  callbacks %d", st.Collisions, st.Callbacks),
	}
}

// Lines describes a shape and its registry, one entry per line.
func Lines(s *collision.Shape) []string {
	pos := s.Position()
	b := s.RightBox()
	lines := []string{
		fmt.Sprintf("%v %v", s.Kind(), s.Handle()),
		fmt.Sprintf("pos (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z),
		fmt.Sprintf("box (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z),
		fmt.Sprintf("layers %#x ignore %#x", uint32(s.Layers()), uint32(s.LayersToIgnore())),
		fmt.Sprintf("friction %.2f, touching %.2f", s.FrictionCoefficient(), s.CollidingFrictionCoefficient()),
	}
	for _, h := range s.CollidingShapes() {
		entry, ok := s.CollidingShape(h)
		if !ok {
			continue
		}
		kind := "contact"
		if entry.IsImpenetrable {
			kind = "solid"
		}
		lines = append(lines, fmt.Sprintf("  %s %v %v", kind, h, entry.SolutionVector))
	}
	return lines
}
