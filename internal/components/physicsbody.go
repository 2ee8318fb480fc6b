package components

import (
	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

// PhysicsBody marks its GameObject as a physics participant. Static bodies
// are level geometry the solver pushes against; kinematic bodies are
// solver-driven movers. The world bridge creates the underlying body from
// the sibling Collider and binds it here.
type PhysicsBody struct {
	engine.BaseComponent
	Kinematic bool
	MaxSpeed  float32

	body *physics.Body
}

func NewStaticBody() *PhysicsBody {
	return &PhysicsBody{}
}

func NewKinematicBody(maxSpeed float32) *PhysicsBody {
	return &PhysicsBody{Kinematic: true, MaxSpeed: maxSpeed}
}

// Bind attaches the world's body. The bridge calls this on registration;
// components only read through the accessors below.
func (p *PhysicsBody) Bind(b *physics.Body) {
	p.body = b
}

func (p *PhysicsBody) Body() *physics.Body {
	return p.body
}

// State returns the solver state, or the spawn state while unbound so
// callers never see a grounded body that does not exist yet.
func (p *PhysicsBody) State() physics.KinematicState {
	if p.body == nil {
		return physics.NewKinematicState()
	}
	return p.body.KinematicState
}

func (p *PhysicsBody) Grounded() bool {
	return p.body != nil && p.body.Grounded
}
