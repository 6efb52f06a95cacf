package collision

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type testOwner struct {
	position  rl.Vector3
	size      rl.Vector3
	entered   []CollisionInformation
	updated   []CollisionInformation
	exited    []*Shape
	displaced rl.Vector3
}

func (o *testOwner) Position() rl.Vector3 { return o.position }

func (o *testOwner) Size() rl.Vector3 { return o.size }

func (o *testOwner) OnCollisionEnter(info CollisionInformation) { o.entered = append(o.entered, info) }

func (o *testOwner) OnCollisionUpdate(info CollisionInformation) { o.updated = append(o.updated, info) }

func (o *testOwner) OnCollisionExit(s *Shape) { o.exited = append(o.exited, s) }

func (o *testOwner) Displace(offset rl.Vector3) {
	o.displaced = rl.Vector3Add(o.displaced, offset)
	o.position = rl.Vector3Add(o.position, offset)
}

func moveTo(s *Shape, pos rl.Vector3) {
	s.Transform(pos, s.Rotation(), s.Scale(), s.Size())
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic from %s", name)
		}
	}()
	fn()
}

func TestCollidesLifecycle(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 10}, 1)

	ticks := []struct {
		pos     rl.Vector3
		want    CollisionResult
		entries int
	}{
		{rl.Vector3{X: 10}, NoCollision, 0},
		{rl.Vector3{X: 1.5}, EnterCollision, 1},
		{rl.Vector3{X: 1.5}, UpdateCollision, 1},
		{rl.Vector3{X: 10}, ExitCollision, 0},
		{rl.Vector3{X: 10}, NoCollision, 0},
	}

	for i, tick := range ticks {
		moveTo(b, tick.pos)
		got, _ := a.Collides(b)
		if got != tick.want {
			t.Errorf("Tick %d: expected %v, got %v", i+1, tick.want, got)
		}
		if n := len(a.CollidingShapes()); n != tick.entries {
			t.Errorf("Tick %d: expected %d registry entries, got %d", i+1, tick.entries, n)
		}
	}
}

func TestCollidesLayerFiltering(t *testing.T) {
	cases := []struct {
		name             string
		aLayers, aIgnore LayerMask
		bLayers, bIgnore LayerMask
		wantFiltered     bool
	}{
		{"defaults", LayerDefault, LayerNone, LayerDefault, LayerNone, false},
		{"b_ignores_a", Layer(1), LayerNone, Layer(2), Layer(1), true},
		{"a_ignores_b", Layer(1), Layer(2), Layer(2), LayerNone, true},
		{"unrelated_ignore", Layer(1), Layer(5), Layer(2), Layer(6), false},
		{"ignore_all", Layer(1), LayerAll, Layer(2), LayerNone, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPool()
			a := newBall(p, rl.Vector3{}, 1)
			b := newBall(p, rl.Vector3{X: 0.5}, 1)
			a.Setup(c.aLayers, c.aIgnore)
			b.Setup(c.bLayers, c.bIgnore)

			ab, _ := a.Collides(b)
			ba, _ := b.Collides(a)
			if c.wantFiltered {
				if ab != NoCollision || ba != NoCollision {
					t.Errorf("Expected filtered pair to report kNoCollision, got %v and %v", ab, ba)
				}
				return
			}
			if ab != EnterCollision || ba != EnterCollision {
				t.Errorf("Expected kEnterCollision both ways, got %v and %v", ab, ba)
			}
		})
	}
}

func TestLayerChangeDropsEntry(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 0.5}, 1)

	if r, _ := a.Collides(b); r != EnterCollision {
		t.Fatalf("Expected kEnterCollision, got %v", r)
	}

	b.Setup(Layer(3), LayerNone)
	a.Setup(LayerDefault, Layer(3))
	if r, _ := a.Collides(b); r != NoCollision {
		t.Errorf("Expected kNoCollision once filtered, got %v", r)
	}
	if a.IsCollidingWith(b) {
		t.Error("Filtered pair should not stay registered")
	}
}

func TestCollidingFrictionIsMaximum(t *testing.T) {
	p := NewPool()
	body := newBall(p, rl.Vector3{}, 1)
	x := newBox(p, rl.Vector3{Y: -1}, rl.Vector3{X: 4, Y: 1, Z: 4}, rl.Vector3{})
	y := newBox(p, rl.Vector3{X: 1}, rl.Vector3{X: 1, Y: 4, Z: 4}, rl.Vector3{})
	x.SetFrictionCoefficient(0.2)
	y.SetFrictionCoefficient(0.9)

	if got := body.CollidingFrictionCoefficient(); got != 0 {
		t.Errorf("Expected 0 friction with no contacts, got %f", got)
	}

	for _, surface := range []*Shape{x, y} {
		if r, _ := body.Collides(surface); r != EnterCollision {
			t.Fatalf("Expected contact with %v, got %v", surface.Handle(), r)
		}
	}

	if got := body.CollidingFrictionCoefficient(); got != 0.9 {
		t.Errorf("Expected friction 0.9, got %f", got)
	}
}

func TestCollidesIsIdempotentWithoutMovement(t *testing.T) {
	p := NewPool()
	a := newBox(p, rl.Vector3{}, cube(2), rl.Vector3{})
	b := newBall(p, rl.Vector3{X: 1.2, Y: 0.3}, 1)

	first, _ := a.Collides(b)
	before, _ := a.CollidingShape(b.Handle())
	second, _ := a.Collides(b)
	after, _ := a.CollidingShape(b.Handle())

	if first != EnterCollision {
		t.Errorf("Expected kEnterCollision first, got %v", first)
	}
	if second != UpdateCollision {
		t.Errorf("Expected kUpdateCollision second, got %v", second)
	}
	if before != after {
		t.Errorf("Expected unchanged entry, got %+v then %+v", before, after)
	}
}

func TestDestroyedCounterpartIsPurged(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 0.5}, 1)
	c := newBall(p, rl.Vector3{Y: 0.5}, 1)
	b.SetFrictionCoefficient(0.7)

	a.Collides(b)
	stale := b.Handle()
	if !p.Destroy(b) {
		t.Fatal("Destroy should succeed for a live shape")
	}

	if a.IsCollidingWith(b) || len(a.CollidingShapes()) != 0 {
		t.Error("Destroyed shape should be gone from the registry")
	}
	if got := a.CollidingFrictionCoefficient(); got != 0 {
		t.Errorf("Expected friction 0 after counterpart destroyed, got %f", got)
	}
	if r, _ := a.Collides(c); r != EnterCollision {
		t.Errorf("Expected kEnterCollision with a live shape, got %v", r)
	}

	d := newBall(p, rl.Vector3{X: 0.5}, 1)
	if d.Handle() == stale {
		t.Error("Reused slot should carry a new generation")
	}
	if _, ok := p.Get(stale); ok {
		t.Error("Stale handle should not resolve")
	}
	if p.Destroy(b) {
		t.Error("Destroying twice should report false")
	}

	mustPanic(t, "Collides with destroyed shape", func() { a.Collides(b) })
	mustPanic(t, "Collides from destroyed shape", func() { b.Collides(a) })
	mustPanic(t, "Collides with nil", func() { a.Collides(nil) })
}

func TestDisabledShapeFreezesRegistry(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 1}, 1)
	a.Collides(b)

	a.Enable(false)
	moveTo(b, rl.Vector3{X: 50})
	if r, _ := a.Collides(b); r != NoCollision {
		t.Errorf("Expected kNoCollision while disabled, got %v", r)
	}
	if !a.IsCollidingWith(b) {
		t.Error("Disabled shape should keep its last contacts")
	}

	a.Enable(true)
	if r, _ := a.Collides(b); r != ExitCollision {
		t.Errorf("Expected kExitCollision after re-enabling, got %v", r)
	}
}

func TestResetClearsWithoutExit(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 1}, 1)
	a.Collides(b)

	a.Reset()
	if len(a.CollidingShapes()) != 0 {
		t.Error("Reset should empty the registry")
	}
	if r, _ := a.Collides(b); r != EnterCollision {
		t.Errorf("Expected kEnterCollision after reset, got %v", r)
	}
}

func TestRegisterCollisionsDisabled(t *testing.T) {
	p := NewPool()
	a := newBall(p, rl.Vector3{}, 1)
	b := newBall(p, rl.Vector3{X: 1}, 1)
	a.RegisterCollisions(false)

	for i := 0; i < 2; i++ {
		if r, _ := a.Collides(b); r != EnterCollision {
			t.Errorf("Call %d: expected kEnterCollision, got %v", i+1, r)
		}
	}
	if len(a.CollidingShapes()) != 0 {
		t.Error("No entry should be created when registration is off")
	}

	_, info := a.Collides(b)
	a.ResolveCollision(info, true)
	if len(a.CollidingShapes()) != 0 || a.ImpenetrableCount() != 0 {
		t.Errorf("Expected resolve to leave the registry empty, got %v", a.CollidingShapes())
	}
	if !approxVec(a.Position(), rl.Vector3{X: -1}) {
		t.Errorf("Expected resolve to still move the shape to (-1,0,0), got %v", a.Position())
	}
}

func TestResolveCollisionRestsOnFloor(t *testing.T) {
	p := NewPool()
	owner := &testOwner{size: cube(2)}
	body := p.NewShape(KindBall, owner)
	floor := newBox(p, rl.Vector3{Y: -1.5}, rl.Vector3{X: 10, Y: 2, Z: 10}, rl.Vector3{})
	floor.SetFrictionCoefficient(0.4)

	info := CheckIfOverlap(body, floor)
	if !approxVec(info.SolutionVector.Direction, rl.Vector3{Y: -1}) || !approx(info.SolutionVector.Magnitude, 0.5) {
		t.Fatalf("Expected (0,-1,0) x 0.5, got %v", info.SolutionVector)
	}

	body.ResolveCollision(info, true)
	if !approxVec(body.Position(), rl.Vector3{Y: 0.5}) {
		t.Errorf("Expected body lifted to (0,0.5,0), got %v", body.Position())
	}
	if !approxVec(owner.displaced, rl.Vector3{Y: 0.5}) {
		t.Errorf("Expected owner displaced by (0,0.5,0), got %v", owner.displaced)
	}
	if body.ImpenetrableCount() != 1 {
		t.Errorf("Expected 1 impenetrable contact, got %d", body.ImpenetrableCount())
	}
	if got := body.CollidingFrictionCoefficient(); got != 0.4 {
		t.Errorf("Expected friction 0.4, got %f", got)
	}

	// resting contact is retested with the margin and stays registered
	if r, _ := body.Collides(floor); r != UpdateCollision {
		t.Errorf("Expected kUpdateCollision for a resting contact, got %v", r)
	}

	mustPanic(t, "ResolveCollision with foreign information", func() {
		floor.ResolveCollision(info, true)
	})
}

func TestCanMoveTowards(t *testing.T) {
	p := NewPool()
	body := newBall(p, rl.Vector3{}, 1)
	floor := newBox(p, rl.Vector3{Y: -1.5}, rl.Vector3{X: 10, Y: 2, Z: 10}, rl.Vector3{})
	body.ResolveCollision(CheckIfOverlap(body, floor), true)

	before, _ := body.CollidingShape(floor.Handle())

	cases := []struct {
		name         string
		displacement rl.Vector3
		increment    float32
		want         bool
	}{
		{"into_floor", rl.Vector3{Y: -1}, 0, false},
		{"along_floor", rl.Vector3{X: 1}, 0.01, true},
		{"away_from_floor", rl.Vector3{Y: 1}, 0, true},
		{"no_motion", rl.Vector3{}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := body.CanMoveTowards(c.displacement, c.increment); got != c.want {
				t.Errorf("Expected %t, got %t", c.want, got)
			}
		})
	}

	after, _ := body.CollidingShape(floor.Handle())
	if before != after || len(body.CollidingShapes()) != 1 {
		t.Error("CanMoveTowards should not change the registry")
	}
	if !approxVec(body.Position(), rl.Vector3{Y: 0.5}) {
		t.Errorf("CanMoveTowards should not move the shape, got %v", body.Position())
	}
}

func TestSyncFromOwner(t *testing.T) {
	p := NewPool()
	owner := &testOwner{position: rl.Vector3{X: 3}, size: rl.Vector3{X: 2, Y: 6, Z: 4}}
	s := p.NewShape(KindBall, owner)

	ball, ok := s.Volume().(Ball)
	if !ok {
		t.Fatalf("Expected Ball volume, got %T", s.Volume())
	}
	if ball.Radius != 3 {
		t.Errorf("Expected radius from the largest size component, got %f", ball.Radius)
	}

	owner.position = rl.Vector3{X: -3}
	s.Sync()
	if s.Position() != owner.position {
		t.Errorf("Expected position %v, got %v", owner.position, s.Position())
	}
	if s.RightBox().Min.X != -6 {
		t.Errorf("Expected rightBox min X -6, got %f", s.RightBox().Min.X)
	}
}

func TestShapeString(t *testing.T) {
	p := NewPool()
	s := newBall(p, rl.Vector3{}, 2)
	out := s.String()
	if !strings.Contains(out, "Ball") || !strings.Contains(out, "radius 2.00") {
		t.Errorf("Unexpected String output: %s", out)
	}
}
