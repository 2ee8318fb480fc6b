package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/engine"
)

// PlayerController turns keyboard input into movement intents. Directions
// are taken relative to the follow camera's yaw so W always runs away from
// the camera no matter where it orbited to.
type PlayerController struct {
	engine.BaseComponent
	Camera engine.GameObjectRef
}

func NewPlayerController() *PlayerController {
	return &PlayerController{}
}

func (p *PlayerController) Update(deltaTime float32) {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	movement := engine.GetComponent[*MovementController](g)
	body := engine.GetComponent[*PhysicsBody](g)
	if movement == nil || body == nil {
		return
	}

	forward, right := yawDirections(p.cameraYaw(g))

	var dir mgl32.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		dir = dir.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		dir = dir.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyA) {
		dir = dir.Add(right)
	}
	if rl.IsKeyDown(rl.KeyD) {
		dir = dir.Sub(right)
	}
	movement.SetMove(dir)

	if rl.IsKeyPressed(rl.KeySpace) {
		movement.TryJump(body.State(), g.Transform.Position[1])
	}
}

// cameraYaw reads the follow camera's yaw; without one the object's own
// rotation decides which way is forward.
func (p *PlayerController) cameraYaw(g *engine.GameObject) float32 {
	if target := p.Camera.Get(g.Scene); target != nil {
		if cam := engine.GetComponent[*FollowCamera](target); cam != nil {
			return cam.Yaw
		}
	}
	return g.Transform.Rotation[1]
}

func yawDirections(yawDeg float32) (forward, right mgl32.Vec3) {
	yaw := float64(mgl32.DegToRad(yawDeg))
	forward = mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
	right = mgl32.Vec3{float32(math.Sin(yaw)), 0, float32(-math.Cos(yaw))}
	return
}
