package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"platform3d/internal/engine"
)

func init() {
	engine.RegisterComponent("platform", func(props map[string]any) engine.Component {
		axis := engine.PropVec3(props, "axis", [3]float32{1, 0, 0})
		return NewMovingPlatform(
			mgl32.Vec3{axis[0], axis[1], axis[2]},
			engine.PropFloat(props, "distance", 4),
			engine.PropFloat(props, "duration", 3),
		)
	})
}

// MovingPlatform slides its GameObject back and forth along a fixed axis.
// The physics bridge refreshes collider placements from transforms every
// tick, so bodies collide with the platform exactly where it is drawn.
type MovingPlatform struct {
	engine.BaseComponent
	Axis     mgl32.Vec3
	Distance float32
	Duration float32 // seconds for one leg of the trip

	seq   *gween.Sequence
	start mgl32.Vec3
}

func NewMovingPlatform(axis mgl32.Vec3, distance, duration float32) *MovingPlatform {
	if axis.Len() > 0 {
		axis = axis.Normalize()
	}
	return &MovingPlatform{Axis: axis, Distance: distance, Duration: duration}
}

func (p *MovingPlatform) Start() {
	p.start = p.GetGameObject().Transform.Position
	p.seq = gween.NewSequence(
		gween.New(0, p.Distance, p.Duration, ease.Linear),
		gween.New(p.Distance, 0, p.Duration, ease.Linear),
	)
}

func (p *MovingPlatform) Update(deltaTime float32) {
	if p.seq == nil {
		return
	}
	offset, _, done := p.seq.Update(deltaTime)
	p.GetGameObject().Transform.Position = p.start.Add(p.Axis.Mul(offset))
	if done {
		p.seq.Reset()
	}
}
