package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

// Collider describes the physics shape of its GameObject. The world bridge
// reads it once when the object is registered; after that the shape is
// fixed and only the placement follows the transform.
type Collider struct {
	engine.BaseComponent
	Shape  physics.Shape
	Offset mgl32.Vec3
}

func NewBoxCollider(halfExtents mgl32.Vec3) *Collider {
	return &Collider{
		Shape: physics.Shape{Kind: physics.ShapeBox, HalfExtents: halfExtents},
	}
}

// NewCapsuleCollider returns an upright capsule of the given total height.
func NewCapsuleCollider(height, radius float32) *Collider {
	c := physics.NewVerticalCapsule(height, radius, mgl32.Vec3{})
	return &Collider{Shape: c.Shape}
}

func NewHullCollider(vertices []mgl32.Vec3) *Collider {
	c := physics.NewConvexHull(vertices, mgl32.Vec3{})
	return &Collider{Shape: c.Shape}
}

// Build places the shape at the object's world position plus offset.
func (c *Collider) Build() physics.Collider {
	position := c.Offset
	if g := c.GetGameObject(); g != nil {
		position = g.WorldPosition().Add(c.Offset)
	}
	return physics.Collider{Shape: c.Shape, Position: position}
}
