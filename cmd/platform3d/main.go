// The sandbox: a kinematic capsule character in a collidable level, with a
// live solver tuning panel, level hot reload, and optional GPU-assisted
// collision events.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"platform3d/internal/components"
	"platform3d/internal/compute"
	"platform3d/internal/config"
	"platform3d/internal/engine"
	"platform3d/internal/world"
	"platform3d/levels"
)

const (
	maxScanBodies = 4096
	maxScanPairs  = 1 << 16
)

type app struct {
	cfg      config.Config
	world    *world.World
	renderer world.Renderer
	panel    tuningPanel
	watcher  *world.Watcher
	scanner  *compute.BroadPhase
	debug    bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	a := &app{cfg: cfg, world: world.New()}
	a.Run()
}

func (a *app) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(a.cfg.WindowWidth, a.cfg.WindowHeight, "platform3d sandbox")
	defer rl.CloseWindow()

	rl.SetTargetFPS(a.cfg.TargetFPS)
	rl.DisableCursor()

	a.world.LevelLoaded.AddListener(func(name string) {
		log.Printf("Level loaded: %s", name)
	})

	initPersistence()
	applySettings(loadSettings(), &a.world.Physics.Tuning, &a.panel)
	a.panel.Changed.AddListener(func() {
		saveSettings(snapshotSettings(a.world.Physics.Tuning, &a.panel))
	})

	if !a.cfg.DisableGPU {
		a.setupGPU()
	}
	defer func() {
		if a.scanner != nil {
			a.scanner.Release()
		}
	}()

	a.loadLevel()

	if a.cfg.LevelPath != "" {
		watcher, err := world.NewWatcher(a.cfg.LevelPath)
		if err != nil {
			log.Printf("Warning: hot reload unavailable: %v", err)
		} else {
			a.watcher = watcher
			defer watcher.Close()
		}
	}

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *app) setupGPU() {
	info, err := compute.Initialize()
	if err != nil {
		log.Printf("Warning: GPU compute unavailable, using CPU grid: %v", err)
		return
	}
	log.Printf("GPU pair scan: %s (%s)", info.Name, info.Backend)

	scan, err := compute.NewBroadPhase(maxScanBodies, maxScanPairs)
	if err != nil {
		log.Printf("Warning: GPU broad phase setup failed: %v", err)
		return
	}
	a.scanner = scan
	a.world.UseScanner(scan)
}

func (a *app) loadLevel() {
	data, err := a.levelBytes()
	if err != nil {
		log.Printf("Warning: level load failed: %v", err)
		return
	}
	if err := a.world.LoadLevel(data); err != nil {
		log.Printf("Warning: level reload failed, keeping current level: %v", err)
	}
}

func (a *app) levelBytes() ([]byte, error) {
	if a.cfg.LevelPath != "" {
		data, err := os.ReadFile(a.cfg.LevelPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", a.cfg.LevelPath, err)
		}
		return data, nil
	}
	return levels.Load(levels.DefaultLevel)
}

func (a *app) drainWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case path := <-a.watcher.Events:
		log.Printf("Level changed on disk: %s", path)
		a.loadLevel()
	case err := <-a.watcher.Errors:
		log.Printf("Warning: level watcher: %v", err)
	default:
	}
}

func (a *app) Update() {
	start := time.Now()
	deltaTime := rl.GetFrameTime()

	a.drainWatcher()

	if rl.IsKeyPressed(rl.KeyF1) {
		a.debug = !a.debug
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.loadLevel()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Visible = !a.panel.Visible
		if a.panel.Visible {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	// The sim pauses while the panel is open so slider drags do not fight
	// the mouse-look camera.
	if !a.panel.Visible {
		a.world.Update(deltaTime)
	}

	a.updateMs = float64(time.Since(start).Microseconds()) / 1000.0
}

func (a *app) Draw() {
	start := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	a.renderer.ShowContacts = a.debug || a.panel.ShowContacts
	rl.BeginMode3D(a.camera())
	a.renderer.Draw(a.world)
	rl.EndMode3D()

	a.drawUI()
	rl.EndDrawing()

	a.drawMs = float64(time.Since(start).Microseconds()) / 1000.0
}

// camera resolves the scene's follow camera, falling back to a fixed view
// when a level has none (or failed to load).
func (a *app) camera() rl.Camera3D {
	if obj := a.world.Scene.FindByName("MainCamera"); obj != nil {
		if follow := engine.GetComponent[*components.FollowCamera](obj); follow != nil {
			return follow.Camera3D()
		}
	}
	return rl.Camera3D{
		Position:   rl.NewVector3(10, 10, 10),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

func (a *app) drawUI() {
	rl.DrawText("WASD to move, Space to jump, Mouse to orbit", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 debug | Tab tuning | R reload", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	if a.debug {
		a.drawDebugUI()
	}
	a.panel.Draw(&a.world.Physics.Tuning)
}

func (a *app) drawDebugUI() {
	x := int32(rl.GetScreenWidth()) - 280

	rl.DrawText(fmt.Sprintf("Bodies:   %d", len(a.world.Physics.Bodies())), x, 10, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Contacts: %d", len(a.world.LastPairs())), x, 30, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Update:   %.2f ms", a.updateMs), x, 50, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Draw:     %.2f ms", a.drawMs), x, 70, 16, rl.Green)

	player := a.world.Scene.FindByName("Player")
	if player == nil {
		return
	}
	pb := engine.GetComponent[*components.PhysicsBody](player)
	if pb == nil || pb.Body() == nil {
		return
	}
	state := pb.State()
	pos := player.Transform.Position
	rl.DrawText(fmt.Sprintf("Player:   (%.2f, %.2f, %.2f)", pos[0], pos[1], pos[2]), x, 95, 16, rl.Yellow)
	rl.DrawText(fmt.Sprintf("Grounded: %v (%.2fs ago)", state.Grounded, state.TimeSinceGrounded), x, 115, 16, rl.Yellow)
}
