package components

import (
	"fmt"

	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Launcher spawns balls from its object at a fixed interval and removes each
// one after Lifetime seconds.
type Launcher struct {
	engine.BaseComponent
	Interval float32
	Lifetime float32
	Velocity rl.Vector3
	Radius   float32
	Limit    int // 0 = unlimited

	timer    float32
	launched int
	alive    []launched
}

type launched struct {
	obj *engine.GameObject
	age float32
}

func (l *Launcher) Update(deltaTime float32) {
	g := l.GetGameObject()
	if g == nil || g.Scene == nil || g.Scene.World == nil {
		return
	}
	world := g.Scene.World

	kept := l.alive[:0]
	for _, shot := range l.alive {
		shot.age += deltaTime
		if l.Lifetime > 0 && shot.age >= l.Lifetime {
			world.Destroy(shot.obj)
			continue
		}
		kept = append(kept, shot)
	}
	l.alive = kept

	l.timer += deltaTime
	if l.Interval <= 0 || l.timer < l.Interval {
		return
	}
	l.timer = 0
	if l.Limit > 0 && l.launched >= l.Limit {
		return
	}
	l.Launch()
}

// Launch spawns one ball immediately.
func (l *Launcher) Launch() *engine.GameObject {
	g := l.GetGameObject()
	l.launched++

	ball := engine.NewGameObject(fmt.Sprintf("%s_Shot_%d", g.Name, l.launched))
	ball.Tags = []string{"projectile"}
	ball.Transform.Position = g.WorldPosition()

	ball.AddComponent(NewBallCollider(l.Radius))
	rb := NewRigidbody()
	rb.Bounciness = 0.6
	rb.Velocity = l.Velocity
	ball.AddComponent(rb)

	g.Scene.World.SpawnObject(ball)
	l.alive = append(l.alive, launched{obj: ball})
	return ball
}

func (l *Launcher) Launched() int {
	return l.launched
}

func init() {
	engine.RegisterScript("Launcher", launcherFactory, launcherSerializer)
}

func launcherFactory(props map[string]any) engine.Component {
	velocity, err := propVector(props, "velocity", rl.Vector3{Y: 5})
	if err != nil {
		velocity = rl.Vector3{Y: 5}
	}
	return &Launcher{
		Interval: propFloat(props, "interval", 1),
		Lifetime: propFloat(props, "lifetime", 5),
		Velocity: velocity,
		Radius:   propFloat(props, "radius", 0.5),
		Limit:    int(propFloat(props, "limit", 0)),
	}
}

func launcherSerializer(c engine.Component) map[string]any {
	l, ok := c.(*Launcher)
	if !ok {
		return nil
	}
	return map[string]any{
		"interval": float64(l.Interval),
		"lifetime": float64(l.Lifetime),
		"velocity": vectorProp(l.Velocity),
		"radius":   float64(l.Radius),
		"limit":    float64(l.Limit),
	}
}
