package main

import (
	"fmt"
	"log"

	"collide3d/internal/camera"
	"collide3d/internal/collision"
	"collide3d/internal/components"
	"collide3d/internal/config"
	"collide3d/internal/debugdraw"
	"collide3d/internal/engine"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	inspectorWidth = 340
	pickDistance   = 500
	fallbackScene  = "scene_out.yaml"
)

type viewer struct {
	cfg        config.Config
	configPath string

	World     *world.World
	Camera    *camera.FlyCamera
	Inspector *debugdraw.Inspector
	watcher   *config.Watcher

	paused        bool
	stepOnce      bool
	showSolutions bool
	showInspector bool
}

func newViewer(cfg config.Config, configPath string) *viewer {
	return &viewer{
		cfg:           cfg,
		configPath:    configPath,
		Camera:        camera.New(rl.Vector3{X: 25, Y: 20, Z: 25}),
		showSolutions: true,
		showInspector: true,
	}
}

func (v *viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(v.cfg.Viewer.Width), int32(v.cfg.Viewer.Height), "collide3d")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(v.cfg.Viewer.FPS))
	debugdraw.Style()
	v.Inspector = debugdraw.NewInspector(
		float32(v.cfg.Viewer.Width-inspectorWidth), 0, inspectorWidth, float32(v.cfg.Viewer.Height))

	w, err := loadWorld(v.cfg)
	if err != nil {
		log.Fatalf("Scene: %v", err)
	}
	v.World = w
	v.watch()
	defer func() {
		if v.watcher != nil {
			v.watcher.Close()
		}
	}()

	for !rl.WindowShouldClose() {
		v.pollReload()
		v.Update()
		v.Draw()
	}
}

func loadWorld(cfg config.Config) (*world.World, error) {
	w := world.New(cfg.Physics.Options())
	if cfg.Viewer.Scene == "" {
		w.PopulateDemo(cfg.Viewer.DemoShapes, cfg.Viewer.Seed)
		return w, nil
	}
	if err := w.LoadScene(cfg.Viewer.Scene); err != nil {
		return nil, err
	}
	log.Printf("Scene: loaded %s (%d objects, %d shapes)", cfg.Viewer.Scene, len(w.Scene.GameObjects), w.Physics.Shapes.Len())
	return w, nil
}

func (v *viewer) watch() {
	paths := []string{v.configPath}
	if v.cfg.Viewer.Scene != "" {
		paths = append(paths, v.cfg.Viewer.Scene)
	}
	if v.watcher != nil {
		v.watcher.Close()
		v.watcher = nil
	}
	watcher, err := config.NewWatcher(paths...)
	if err != nil {
		log.Printf("Config: hot reload disabled: %v", err)
		return
	}
	v.watcher = watcher
}

// pollReload drains pending file events without blocking the frame.
func (v *viewer) pollReload() {
	if v.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("Config: %s changed", path)
			changed = true
			continue
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("Config: watcher: %v", err)
			continue
		default:
		}
		break
	}
	if changed {
		v.reload()
	}
}

// reload re-reads config and scene. On any error the running world is kept.
func (v *viewer) reload() {
	cfg, err := config.Load(v.configPath)
	if err != nil {
		log.Printf("Config: reload failed: %v", err)
		return
	}
	w, err := loadWorld(cfg)
	if err != nil {
		log.Printf("Scene: reload failed: %v", err)
		return
	}
	sceneChanged := cfg.Viewer.Scene != v.cfg.Viewer.Scene
	v.cfg = cfg
	v.World = w
	v.Inspector.Selected = collision.NoHandle
	if sceneChanged {
		v.watch()
	}
}

func (v *viewer) Update() {
	deltaTime := rl.GetFrameTime()
	v.Camera.Update(deltaTime)

	if rl.IsKeyPressed(rl.KeyP) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.stepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		v.showSolutions = !v.showSolutions
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.showInspector = !v.showInspector
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		v.destroySelected()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		if g := v.selectedObject(); g != nil {
			g.SetActive(!g.Active)
		}
	}
	if rl.IsKeyDown(rl.KeyLeftControl) && rl.IsKeyPressed(rl.KeyS) {
		v.save()
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !v.overInspector() {
		v.pick()
	}

	if !v.paused || v.stepOnce {
		v.World.Update(deltaTime)
		v.stepOnce = false
	}
}

func (v *viewer) overInspector() bool {
	return v.showInspector && rl.CheckCollisionPointRec(rl.GetMousePosition(), v.Inspector.Bounds)
}

func (v *viewer) pick() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.Camera.GetRaylibCamera())
	hit, ok := v.World.Physics.Raycast(ray.Position, ray.Direction, pickDistance, collision.LayerAll)
	if !ok {
		v.Inspector.Selected = collision.NoHandle
		return
	}
	v.Inspector.Selected = hit.Shape.Handle()
}

// selectedObject returns the object owning the selected shape, if any.
func (v *viewer) selectedObject() *engine.GameObject {
	s, ok := v.World.Physics.Shapes.Get(v.Inspector.Selected)
	if !ok {
		return nil
	}
	if col, ok := s.Owner().(*components.Collider); ok {
		return col.GetGameObject()
	}
	return nil
}

func (v *viewer) destroySelected() {
	if g := v.selectedObject(); g != nil {
		v.World.Destroy(g)
	} else if s, ok := v.World.Physics.Shapes.Get(v.Inspector.Selected); ok {
		v.World.RemoveShape(s)
	}
	v.Inspector.Selected = collision.NoHandle
}

func (v *viewer) save() {
	path := v.cfg.Viewer.Scene
	if path == "" {
		path = fallbackScene
	}
	if err := v.World.SaveScene(path); err != nil {
		log.Printf("Scene: save failed: %v", err)
		return
	}
	log.Printf("Scene: saved %s", path)
}

func (v *viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

	rl.BeginMode3D(v.Camera.GetRaylibCamera())
	rl.DrawGrid(60, 1)
	if v.cfg.Viewer.Wireframes {
		debugdraw.World(v.World.Physics.Shapes, v.Inspector.Selected, v.showSolutions)
	}
	rl.EndMode3D()

	if v.showInspector {
		v.Inspector.Draw(v.World.Physics)
	}

	rl.DrawFPS(10, 10)
	status := "running"
	if v.paused {
		status = "paused (N steps)"
	}
	rl.DrawText(fmt.Sprintf("%s | P pause  F1 vectors  Tab inspector  H hide  Del remove  Ctrl+S save", status), 10, 34, 16, rl.LightGray)

	rl.EndDrawing()
}
