package components

import (
	"math"

	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Oscillator moves an object back and forth along an axis around the
// position it started at. Kinematic movers like this drive the enter, update
// and exit cycle in demo scenes.
type Oscillator struct {
	engine.BaseComponent
	Axis      rl.Vector3
	Amplitude float32
	Speed     float32 // radians per second
	Phase     float32

	origin rl.Vector3
	time   float32
}

func NewOscillator(axis rl.Vector3, amplitude, speed float32) *Oscillator {
	return &Oscillator{Axis: axis, Amplitude: amplitude, Speed: speed}
}

func (o *Oscillator) Start() {
	if g := o.GetGameObject(); g != nil {
		o.origin = g.Transform.Position
	}
}

func (o *Oscillator) Update(deltaTime float32) {
	g := o.GetGameObject()
	if g == nil || rl.Vector3Length(o.Axis) == 0 {
		return
	}

	o.time += deltaTime
	t := o.time*o.Speed + o.Phase
	offset := rl.Vector3Scale(rl.Vector3Normalize(o.Axis), float32(math.Sin(float64(t)))*o.Amplitude)
	g.Transform.Position = rl.Vector3Add(o.origin, offset)
}

func init() {
	engine.RegisterScriptWithApplier("Oscillator", oscillatorFactory, oscillatorSerializer, oscillatorApplier)
}

func oscillatorFactory(props map[string]any) engine.Component {
	axis, err := propVector(props, "axis", rl.Vector3{X: 1})
	if err != nil {
		axis = rl.Vector3{X: 1}
	}
	return &Oscillator{
		Axis:      axis,
		Amplitude: propFloat(props, "amplitude", 2),
		Speed:     propFloat(props, "speed", 1),
		Phase:     propFloat(props, "phase", 0),
	}
}

func oscillatorSerializer(c engine.Component) map[string]any {
	o, ok := c.(*Oscillator)
	if !ok {
		return nil
	}
	return map[string]any{
		"axis":      vectorProp(o.Axis),
		"amplitude": float64(o.Amplitude),
		"speed":     float64(o.Speed),
		"phase":     float64(o.Phase),
	}
}

func oscillatorApplier(c engine.Component, propName string, value any) bool {
	o, ok := c.(*Oscillator)
	if !ok {
		return false
	}
	v, ok := value.(float64)
	if !ok {
		return false
	}
	switch propName {
	case "amplitude":
		o.Amplitude = float32(v)
	case "speed":
		o.Speed = float32(v)
	case "phase":
		o.Phase = float32(v)
	default:
		return false
	}
	return true
}
