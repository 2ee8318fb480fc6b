package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

const (
	DefaultMoveSpeed = 3.5
	// JumpImpulse is the takeoff speed in units/sec.
	JumpImpulse = 2.75
	// CoyoteWindow is how long after leaving the ground a jump still works.
	CoyoteWindow = 0.2
	// JumpRiseLimit refuses the jump once the body has risen this far above
	// the height it was last grounded at, so the coyote window cannot be
	// chained into a double jump.
	JumpRiseLimit = 0.1
)

// MovementController accumulates a movement intent for the next physics
// tick. Input components write into it every frame; the world bridge
// drains it into the body right before the step.
type MovementController struct {
	engine.BaseComponent
	MaxSpeed float32

	intent mgl32.Vec3
}

func NewMovementController() *MovementController {
	return &MovementController{MaxSpeed: DefaultMoveSpeed}
}

// SetMove replaces the horizontal intent. Directions longer than unit are
// normalized so diagonal input is no faster than straight input; shorter
// ones pass through for analog-style partial speed.
func (m *MovementController) SetMove(dir mgl32.Vec3) {
	horizontal := mgl32.Vec3{dir[0], 0, dir[2]}
	if l := horizontal.Len(); l > 1 {
		horizontal = horizontal.Mul(1 / l)
	}
	m.intent[0] = horizontal[0]
	m.intent[2] = horizontal[2]
}

// TryJump adds the jump impulse to the intent if the body state allows it:
// recently grounded and not already risen past the takeoff height.
func (m *MovementController) TryJump(state physics.KinematicState, height float32) bool {
	if state.TimeSinceGrounded >= CoyoteWindow {
		return false
	}
	if height >= state.LastGroundedHeight+JumpRiseLimit {
		return false
	}
	// The solver scales intent by MaxSpeed, so divide it back out to get
	// a takeoff speed independent of run speed.
	m.intent[1] = JumpImpulse / m.MaxSpeed
	return true
}

// TakeIntent returns the accumulated intent and clears it. Draining makes
// jumps one-tick impulses and stops stale input from ghosting across ticks
// when the writer goes quiet.
func (m *MovementController) TakeIntent() mgl32.Vec3 {
	intent := m.intent
	m.intent = mgl32.Vec3{}
	return intent
}
