package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Collision describes a single contact between two colliders.
type Collision struct {
	Position mgl32.Vec3 // estimated contact point
	Normal   mgl32.Vec3 // unit length; orientation documented on CheckCollision
	Depth    float32    // penetration depth, positive while overlapping
}

// CheckCollision tests c against other and reports the contact when the two
// shapes overlap. The normal orientation depends on the pair: Box-Box and
// Capsule-Capsule normals point from c toward other, Box-Capsule normals
// point from the box toward the capsule in both orders, and every hull pair
// points toward c. A bounding-sphere reject runs before any narrow phase.
func (c Collider) CheckCollision(other Collider) (Collision, bool) {
	delta := other.Center().Sub(c.Center())
	reach := c.BoundingRadius() + other.BoundingRadius()
	if delta.Dot(delta) > reach*reach {
		return Collision{}, false
	}

	switch c.Shape.Kind {
	case ShapeBox:
		switch other.Shape.Kind {
		case ShapeBox:
			return collideBoxBox(c, other)
		case ShapeCapsule:
			return collideBoxCapsule(c, other)
		case ShapeConvexHull:
			return collideBoxHull(c, other)
		}
	case ShapeCapsule:
		switch other.Shape.Kind {
		case ShapeBox:
			return collideCapsuleBox(c, other)
		case ShapeCapsule:
			return collideCapsuleCapsule(c, other)
		case ShapeConvexHull:
			return collideCapsuleHull(c, other)
		}
	case ShapeConvexHull:
		switch other.Shape.Kind {
		case ShapeBox:
			return collideHullBox(c, other)
		case ShapeCapsule:
			return collideHullCapsule(c, other)
		case ShapeConvexHull:
			return collideHullHull(c, other)
		}
	}
	return Collision{}, false
}

// collideBoxBox resolves two axis-aligned boxes along the axis of minimum
// overlap. The normal points from a toward b.
func collideBoxBox(a, b Collider) (Collision, bool) {
	delta := b.Position.Sub(a.Position)

	axis := 0
	minOverlap := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		overlap := a.Shape.HalfExtents[i] + b.Shape.HalfExtents[i] - absf(delta[i])
		if overlap <= 0 {
			return Collision{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			axis = i
		}
	}

	var normal mgl32.Vec3
	if delta[axis] < 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}

	return Collision{
		Position: a.Position.Add(b.Position).Mul(0.5),
		Normal:   normal,
		Depth:    minOverlap,
	}, true
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
