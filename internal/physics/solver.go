package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyKind splits bodies into level geometry and solver-driven movers.
type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyKinematic
)

// KinematicState is the solver state a kinematic body carries across ticks.
// Displacement is this tick's movement delta (velocity scaled by dt): the
// horizontal components are replaced from intent every tick while the
// vertical one accumulates gravity and jump impulses.
type KinematicState struct {
	Displacement       mgl32.Vec3
	Grounded           bool
	TimeSinceGrounded  float32
	LastGroundedHeight float32
}

// NewKinematicState returns the spawn state: airborne, with an infinite
// time since the last grounded tick.
func NewKinematicState() KinematicState {
	return KinematicState{TimeSinceGrounded: float32(math.Inf(1))}
}

// Body is one world entry. Position is authoritative: the collider
// placement is refreshed from it before any test runs and the solved
// displacement is committed back to it at the end of the step.
type Body struct {
	Position mgl32.Vec3
	Collider Collider
	Kind     BodyKind

	KinematicState

	// Movement inputs for the next step. The host refreshes them every
	// tick; Intent is expected normalized or zero on the horizontal plane.
	Intent   mgl32.Vec3
	MaxSpeed float32
}

// NewStaticBody returns an immovable, collidable body.
func NewStaticBody(collider Collider) *Body {
	return &Body{
		Position: collider.Position,
		Collider: collider,
		Kind:     BodyStatic,
	}
}

// NewKinematicBody returns a solver-driven body.
func NewKinematicBody(collider Collider, maxSpeed float32) *Body {
	return &Body{
		Position:       collider.Position,
		Collider:       collider,
		Kind:           BodyKinematic,
		KinematicState: NewKinematicState(),
		MaxSpeed:       maxSpeed,
	}
}

// solveBody runs the movement pipeline for one kinematic body. It updates
// the body's displacement and ground state but never its position: Step
// commits every body after the last solve finishes, so solves only ever
// read other bodies' frozen collider placements.
func (w *World) solveBody(body *Body, dt float32) {
	// 1. Intent becomes this tick's displacement candidate. Horizontal
	// components are replaced; vertical accumulates so jump impulses
	// compose with gravity and residual fall.
	intent := body.Intent.Mul(body.MaxSpeed * dt)
	body.Displacement[0] = intent[0]
	body.Displacement[2] = intent[2]
	body.Displacement[1] += intent[1]

	// 2. Gravity pulls on the candidate before any contact is known.
	body.Displacement[1] -= w.Tuning.Gravity * dt

	// 3. Test against every other collider and respond per contact, in
	// iteration order.
	wasGrounded := body.Grounded
	grounded := false
	groundNormal := mgl32.Vec3{0, 1, 0}
	for _, other := range w.bodies {
		if other == body {
			continue
		}
		col, hit := body.Collider.CheckCollision(other.Collider)
		if !hit {
			continue
		}
		w.respondToContact(body, col, wasGrounded, &grounded, &groundNormal, dt)
	}

	// 5. Ground state follows this tick's contacts.
	body.Grounded = grounded
	if grounded {
		body.TimeSinceGrounded = 0
		body.LastGroundedHeight = body.Position[1]
	} else {
		body.TimeSinceGrounded += dt
	}

	// 6. On stable slopes, remove the downslope part of this tick's
	// gravity so an idle body does not creep downhill, then clamp any
	// residual motion into the surface.
	if grounded && groundNormal[1] > w.Tuning.StableSlopeCos() {
		gravity := mgl32.Vec3{0, -w.Tuning.Gravity * dt, 0}
		tangential := gravity.Sub(groundNormal.Mul(gravity.Dot(groundNormal)))
		body.Displacement = body.Displacement.Sub(tangential)

		if into := body.Displacement.Dot(groundNormal); into < 0 {
			body.Displacement = body.Displacement.Sub(groundNormal.Mul(into))
		}
	}
}

// respondToContact applies one contact to the displacement candidate.
// Ground contacts (normal Y above the grounding threshold) mark the body
// grounded and the steepest of them drives slope stabilization. Wall
// contacts trigger a step-up attempt while the body was grounded at tick
// start. Anything else the displacement pushes into loses exactly the
// component along the contact normal.
func (w *World) respondToContact(body *Body, col Collision, wasGrounded bool, grounded *bool, groundNormal *mgl32.Vec3, dt float32) {
	normal := col.Normal
	into := body.Displacement.Dot(normal)

	if normal[1] > w.Tuning.GroundNormalY {
		*grounded = true
		if normal[1] < (*groundNormal)[1] {
			*groundNormal = normal
		}
	}

	isWall := absf(normal[1]) < w.Tuning.GroundNormalY

	if isWall && into < 0 && wasGrounded {
		// 4. Blocked horizontally while grounded: try to climb the ledge
		// before giving up the motion.
		if w.tryStepUp(body, dt) {
			return
		}
		body.Displacement = body.Displacement.Sub(normal.Mul(into))
	} else if into < 0 {
		body.Displacement = body.Displacement.Sub(normal.Mul(into))
	}
}

// tryStepUp probes evenly spaced heights above the body's current position
// for the lowest one whose displaced collider clears every other collider.
// On success the vertical displacement is raised to climb at step-per-tick
// rate and the blocked horizontal motion proceeds.
func (w *World) tryStepUp(body *Body, dt float32) bool {
	for probe := 1; probe <= w.Tuning.StepProbes; probe++ {
		step := float32(probe) * w.Tuning.StepHeight / float32(w.Tuning.StepProbes)

		raised := body.Collider
		raised.Position = raised.Position.Add(mgl32.Vec3{0, step, 0})

		clear := true
		for _, other := range w.bodies {
			if other == body {
				continue
			}
			if _, hit := raised.CheckCollision(other.Collider); hit {
				clear = false
				break
			}
		}
		if clear {
			body.Displacement[1] = maxf(body.Displacement[1], step*dt)
			return true
		}
	}
	return false
}
