package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

// ShapeRenderer draws the sibling Collider's shape at its current
// placement. Hulls always render as edge wireframes; boxes and capsules
// honor the Wireframe flag. Draw must run inside BeginMode3D.
type ShapeRenderer struct {
	engine.BaseComponent
	Color     rl.Color
	Wireframe bool
	Visible   bool
}

func NewShapeRenderer(color rl.Color) *ShapeRenderer {
	return &ShapeRenderer{Color: color, Visible: true}
}

func (s *ShapeRenderer) Draw() {
	if !s.Visible {
		return
	}
	g := s.GetGameObject()
	if g == nil {
		return
	}
	collider := engine.GetComponent[*Collider](g)
	if collider == nil {
		return
	}

	built := collider.Build()
	switch built.Shape.Kind {
	case physics.ShapeBox:
		size := rlVec(built.Shape.HalfExtents.Mul(2))
		if s.Wireframe {
			rl.DrawCubeWiresV(rlVec(built.Position), size, s.Color)
		} else {
			rl.DrawCubeV(rlVec(built.Position), size, s.Color)
			rl.DrawCubeWiresV(rlVec(built.Position), size, outline(s.Color))
		}

	case physics.ShapeCapsule:
		a := rlVec(built.Position.Add(built.Shape.SegStart))
		b := rlVec(built.Position.Add(built.Shape.SegEnd))
		r := built.Shape.Radius
		if s.Wireframe {
			rl.DrawSphereWires(a, r, 8, 8, s.Color)
			rl.DrawSphereWires(b, r, 8, 8, s.Color)
			rl.DrawCylinderWiresEx(a, b, r, r, 8, s.Color)
		} else {
			rl.DrawSphere(a, r, s.Color)
			rl.DrawSphere(b, r, s.Color)
			rl.DrawCylinderEx(a, b, r, r, 12, s.Color)
		}

	case physics.ShapeConvexHull:
		for _, face := range built.Shape.Faces {
			v0 := rlVec(built.Position.Add(built.Shape.Vertices[face.Triangle[0]]))
			v1 := rlVec(built.Position.Add(built.Shape.Vertices[face.Triangle[1]]))
			v2 := rlVec(built.Position.Add(built.Shape.Vertices[face.Triangle[2]]))
			rl.DrawLine3D(v0, v1, s.Color)
			rl.DrawLine3D(v1, v2, s.Color)
			rl.DrawLine3D(v2, v0, s.Color)
		}
	}
}

func outline(c rl.Color) rl.Color {
	return rl.NewColor(c.R/2, c.G/2, c.B/2, c.A)
}
