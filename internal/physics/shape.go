package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind discriminates the collider shape union. The set is closed:
// every pair test switches over it exhaustively.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
	ShapeConvexHull
)

// Shape is the collider geometry in local space. Kind selects which fields
// are meaningful.
type Shape struct {
	Kind ShapeKind

	// Box
	HalfExtents mgl32.Vec3

	// Capsule. The segment endpoints are relative to the collider position.
	SegStart mgl32.Vec3
	SegEnd   mgl32.Vec3
	Radius   float32

	// ConvexHull. Vertices are relative to the collider position; faces are
	// derived once at construction.
	Vertices [8]mgl32.Vec3
	Faces    []Face
}

// Collider pairs a shape with its world-space placement. The placement is a
// plain value: the world refreshes it from the owning body every tick
// before any collision test runs.
type Collider struct {
	Shape    Shape
	Position mgl32.Vec3
}

// NewBox returns a box collider centered on position.
func NewBox(halfExtents, position mgl32.Vec3) Collider {
	return Collider{
		Shape:    Shape{Kind: ShapeBox, HalfExtents: halfExtents},
		Position: position,
	}
}

// NewCapsule returns a capsule collider around the local segment from start
// to end. A zero-length segment behaves as a sphere.
func NewCapsule(start, end mgl32.Vec3, radius float32, position mgl32.Vec3) Collider {
	return Collider{
		Shape:    Shape{Kind: ShapeCapsule, SegStart: start, SegEnd: end, Radius: radius},
		Position: position,
	}
}

// NewVerticalCapsule returns an upright capsule whose bottom touches
// position Y. Heights below the diameter collapse to a sphere.
func NewVerticalCapsule(totalHeight, radius float32, position mgl32.Vec3) Collider {
	segLen := totalHeight - 2*radius
	if segLen < 0 {
		segLen = 0
	}
	return NewCapsule(
		mgl32.Vec3{0, radius, 0},
		mgl32.Vec3{0, radius + segLen, 0},
		radius,
		position,
	)
}

// NewConvexHull returns a hull collider over up to eight local-space
// vertices: lower ring 0-3 then upper ring 4-7, both counter-clockwise seen
// from outside. Shorter inputs repeat the last vertex; the derived face set
// shrinks accordingly.
func NewConvexHull(vertices []mgl32.Vec3, position mgl32.Vec3) Collider {
	var v [8]mgl32.Vec3
	for i := range v {
		if i < len(vertices) {
			v[i] = vertices[i]
		} else if len(vertices) > 0 {
			v[i] = vertices[len(vertices)-1]
		}
	}
	return Collider{
		Shape: Shape{
			Kind:     ShapeConvexHull,
			Vertices: v,
			Faces:    buildHullFaces(v),
		},
		Position: position,
	}
}

// Center returns the world-space center used by the broad-phase reject.
func (c Collider) Center() mgl32.Vec3 {
	switch c.Shape.Kind {
	case ShapeCapsule:
		mid := c.Shape.SegStart.Add(c.Shape.SegEnd).Mul(0.5)
		return c.Position.Add(mid)
	case ShapeConvexHull:
		return c.Position.Add(hullCentroid(c.Shape.Vertices))
	default:
		return c.Position
	}
}

// BoundingRadius returns the radius of a sphere around Center that encloses
// the shape.
func (c Collider) BoundingRadius() float32 {
	switch c.Shape.Kind {
	case ShapeBox:
		return c.Shape.HalfExtents.Len()
	case ShapeCapsule:
		return c.Shape.SegEnd.Sub(c.Shape.SegStart).Len()*0.5 + c.Shape.Radius
	case ShapeConvexHull:
		centroid := hullCentroid(c.Shape.Vertices)
		var far float32
		for _, v := range c.Shape.Vertices {
			if d := v.Sub(centroid).Len(); d > far {
				far = d
			}
		}
		return far
	default:
		return 0
	}
}

// worldVertices returns the hull's vertices offset by its placement.
func (c Collider) worldVertices() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i, v := range c.Shape.Vertices {
		out[i] = c.Position.Add(v)
	}
	return out
}

func hullCentroid(v [8]mgl32.Vec3) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, p := range v {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / 8.0)
}
