package collision

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind is the concrete geometry of a shape.
type Kind uint8

const (
	KindBall Kind = iota
	KindBox
	KindInverseBox
	kindCount
)

var ErrUnknownKind = errors.New("collision: unknown shape kind")

var kindNames = [kindCount]string{"Ball", "Box", "InverseBox"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a name used in scene files to a Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Volume is the geometry a Shape tests with. Values are immutable: moving or
// growing one returns a copy, which is what keeps speculative tests from
// touching the real shape.
type Volume interface {
	Kind() Kind
	Center() rl.Vector3
	// Bounds is the enclosing axis-aligned box in world units.
	Bounds() AABB
	// Project returns the interval the volume covers on a unit axis.
	Project(axis rl.Vector3) Interval

	translated(offset rl.Vector3) Volume
	grown(delta float32) Volume
}

// newVolume derives the geometry for kind from a declared size.
func newVolume(kind Kind, position, rotation, scale, size rl.Vector3) Volume {
	scaled := rl.Vector3Multiply(size, scale)
	switch kind {
	case KindBall:
		return NewBall(position, maxComponent(absVector(scaled))/2)
	case KindBox:
		return NewBox(position, absVector(scaled), rotation)
	case KindInverseBox:
		return NewInverseBox(position, absVector(scaled))
	}
	panic(fmt.Errorf("%w: %d", ErrUnknownKind, kind))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func absVector(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: absf(v.X), Y: absf(v.Y), Z: absf(v.Z)}
}

func maxComponent(v rl.Vector3) float32 {
	m := v.X
	if v.Y > m {
		m = v.Y
	}
	if v.Z > m {
		m = v.Z
	}
	return m
}
