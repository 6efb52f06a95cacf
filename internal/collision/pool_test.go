package collision

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestPoolHandleLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPool()
			shapes := make([]*Shape, 0, c.create)
			for i := 0; i < c.create; i++ {
				shapes = append(shapes, p.NewShape(KindBox, nil))
			}
			if p.Len() != c.create {
				t.Fatalf("expected %d shapes, got %d", c.create, p.Len())
			}
			if c.destroyIndex < 0 {
				return
			}

			victim := shapes[c.destroyIndex]
			if !p.Destroy(victim) {
				t.Fatalf("Destroy should return true for a live shape")
			}
			if victim.Alive() {
				t.Fatalf("shape should not be alive after destruction")
			}
			if p.Len() != c.create-1 {
				t.Fatalf("expected %d shapes, got %d", c.create-1, p.Len())
			}
			for i, s := range shapes {
				if i != c.destroyIndex && !s.Alive() {
					t.Errorf("shape %d should still be alive", i)
				}
			}
		})
	}
}

func TestPoolReusesSlotsWithNewGeneration(t *testing.T) {
	p := NewPool()
	first := p.NewShape(KindBall, nil)
	old := first.Handle()
	p.Destroy(first)

	second := p.NewShape(KindBall, nil)
	if second.Handle().id() != old.id() {
		t.Errorf("Expected slot %d to be reused, got %d", old.id(), second.Handle().id())
	}
	if second.Handle().generation() != old.generation()+1 {
		t.Errorf("Expected generation %d, got %d", old.generation()+1, second.Handle().generation())
	}
	if got, ok := p.Get(second.Handle()); !ok || got != second {
		t.Error("New handle should resolve to the new shape")
	}
	if _, ok := p.Get(NoHandle); ok {
		t.Error("Zero handle should never resolve")
	}
}

func TestPoolShapesInSlotOrder(t *testing.T) {
	p := NewPool()
	a := p.NewShape(KindBall, nil)
	b := p.NewShape(KindBox, nil)
	c := p.NewShape(KindInverseBox, nil)
	p.Destroy(b)

	got := p.Shapes()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Expected [a c], got %v", got)
	}
}

func TestNewShapeRejectsUnknownKind(t *testing.T) {
	mustPanic(t, "NewShape with unknown kind", func() {
		NewPool().NewShape(Kind(42), nil)
	})
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindBall, KindBox, KindInverseBox} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("Capsule"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestLayerMask(t *testing.T) {
	if Layer(3) != 8 {
		t.Errorf("Expected Layer(3) == 8, got %d", Layer(3))
	}
	m := Layer(1).With(Layer(4))
	if !m.Has(Layer(4)) || m.Has(Layer(2)) {
		t.Errorf("Unexpected membership for %v", m)
	}
	if m.Without(Layer(1)) != Layer(4) {
		t.Errorf("Expected only layer 4 left, got %v", m.Without(Layer(1)))
	}
	if m.Count() != 2 {
		t.Errorf("Expected 2 layers, got %d", m.Count())
	}
	mustPanic(t, "Layer(32)", func() { Layer(32) })
}

func TestAABB(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, cube(4))
	inner := NewAABBFromCenter(rl.Vector3{X: 1}, cube(1))
	if !a.Contains(inner) || !a.Intersects(inner) {
		t.Error("Inner box should be contained and intersecting")
	}
	if a.Contains(inner.Translate(rl.Vector3{X: 2})) {
		t.Error("Translated box sticks out and should not be contained")
	}
	if got := a.Expand(1).Size(); got != cube(6) {
		t.Errorf("Expected size 6 after expand, got %v", got)
	}
}
