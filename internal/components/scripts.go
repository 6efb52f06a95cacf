package components

import (
	"log"

	"collide3d/internal/engine"
)

// Rotator is a simple script that spins an object around the Y axis.
type Rotator struct {
	engine.BaseComponent
	Speed float32
}

func (r *Rotator) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil {
		return
	}
	g.Transform.Rotation.Y += r.Speed * deltaTime
	if g.Transform.Rotation.Y > 360 {
		g.Transform.Rotation.Y -= 360
	}
}

func init() {
	engine.RegisterScript("Rotator", rotatorFactory, rotatorSerializer)
	engine.RegisterScriptWithMetadata("ContactLogger", contactLoggerFactory, contactLoggerSerializer, nil,
		map[string]string{"only": "GameObjectRef"})
}

func rotatorFactory(props map[string]any) engine.Component {
	return &Rotator{Speed: propFloat(props, "speed", 90)}
}

func rotatorSerializer(c engine.Component) map[string]any {
	r, ok := c.(*Rotator)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": float64(r.Speed),
	}
}

// ContactLogger logs the contacts of its object. With Only set it reports
// just the contacts with that object.
type ContactLogger struct {
	engine.BaseComponent
	Only engine.GameObjectRef

	Enters, Stays, Exits int
}

func (l *ContactLogger) wants(other *engine.GameObject) bool {
	return !l.Only.IsValid() || l.Only.Refers(other)
}

func (l *ContactLogger) OnCollisionEnter(c engine.Collision) {
	if !l.wants(c.Other) {
		return
	}
	l.Enters++
	log.Printf("Scene: %s touched %s (normal %.2f %.2f %.2f, depth %.3f)",
		l.GetGameObject().Name, c.Other.Name, c.Normal.X, c.Normal.Y, c.Normal.Z, c.Depth)
}

func (l *ContactLogger) OnCollisionStay(c engine.Collision) {
	if l.wants(c.Other) {
		l.Stays++
	}
}

func (l *ContactLogger) OnCollisionExit(other *engine.GameObject) {
	if !l.wants(other) {
		return
	}
	l.Exits++
	name := "<destroyed>"
	if other != nil {
		name = other.Name
	}
	log.Printf("Scene: %s left %s", l.GetGameObject().Name, name)
}

func contactLoggerFactory(props map[string]any) engine.Component {
	return &ContactLogger{Only: engine.RefFromProp(props, "only")}
}

func contactLoggerSerializer(c engine.Component) map[string]any {
	l, ok := c.(*ContactLogger)
	if !ok {
		return nil
	}
	props := map[string]any{}
	if l.Only.IsValid() {
		props["only"] = l.Only.Prop()
	}
	return props
}
