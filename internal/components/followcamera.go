package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/engine"
)

// FollowCamera orbits a target GameObject. Mouse motion spins the orbit,
// the wheel zooms it. The renderer asks for Camera3D every frame, so the
// camera needs no transform of its own.
type FollowCamera struct {
	engine.BaseComponent
	Target     engine.GameObjectRef
	Distance   float32
	Yaw        float32 // degrees
	Pitch      float32 // degrees
	LookSpeed  float32
	FOV        float32
	TargetLift float32 // aim this far above the target origin
}

func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Distance:   6.0,
		Yaw:        -90.0,
		Pitch:      -25.0,
		LookSpeed:  0.1,
		FOV:        60.0,
		TargetLift: 1.0,
	}
}

func (c *FollowCamera) Update(deltaTime float32) {
	mouseDelta := rl.GetMouseDelta()
	c.Yaw += mouseDelta.X * c.LookSpeed
	c.Pitch -= mouseDelta.Y * c.LookSpeed

	// Keep the orbit between nearly-overhead and slightly-below.
	if c.Pitch > 10 {
		c.Pitch = 10
	}
	if c.Pitch < -85 {
		c.Pitch = -85
	}

	c.Distance -= rl.GetMouseWheelMove() * 0.5
	if c.Distance < 2 {
		c.Distance = 2
	}
	if c.Distance > 14 {
		c.Distance = 14
	}
}

// Camera3D builds the raylib camera for the current orbit. Falls back to
// aiming at the camera object itself while the target ref is unresolved.
func (c *FollowCamera) Camera3D() rl.Camera3D {
	g := c.GetGameObject()

	var aim mgl32.Vec3
	if g != nil {
		aim = g.Transform.Position
		if target := c.Target.Get(g.Scene); target != nil {
			aim = target.WorldPosition()
		}
	}
	aim[1] += c.TargetLift

	eye := aim.Sub(c.lookDirection().Mul(c.Distance))

	return rl.Camera3D{
		Position:   rlVec(eye),
		Target:     rlVec(aim),
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

func (c *FollowCamera) lookDirection() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

func rlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
