package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// projectOntoAxis returns the [min, max] interval of points projected onto
// axis.
func projectOntoAxis(points []mgl32.Vec3, axis mgl32.Vec3) (float32, float32) {
	lo := float32(math.MaxFloat32)
	hi := float32(-math.MaxFloat32)
	for _, p := range points {
		d := p.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// boxInterval projects an axis-aligned box onto axis analytically.
func boxInterval(center, half, axis mgl32.Vec3) (float32, float32) {
	c := center.Dot(axis)
	e := half[0]*absf(axis[0]) + half[1]*absf(axis[1]) + half[2]*absf(axis[2])
	return c - e, c + e
}

// collideBoxHull runs a separating-axis test over the box principal axes
// and every hull face normal. Any axis with zero or negative overlap
// separates the pair. The normal points from the hull toward the box.
func collideBoxHull(box, hull Collider) (Collision, bool) {
	verts := hull.worldVertices()

	minDepth := float32(math.MaxFloat32)
	var minAxis mgl32.Vec3

	testAxis := func(axis mgl32.Vec3) bool {
		boxLo, boxHi := boxInterval(box.Position, box.Shape.HalfExtents, axis)
		hullLo, hullHi := projectOntoAxis(verts[:], axis)
		overlap := minf(boxHi, hullHi) - maxf(boxLo, hullLo)
		if overlap <= 0 {
			return false
		}
		if overlap < minDepth {
			minDepth = overlap
			minAxis = axis
		}
		return true
	}

	for _, axis := range [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		if !testAxis(axis) {
			return Collision{}, false
		}
	}
	for _, face := range hull.Shape.Faces {
		if !testAxis(face.Normal) {
			return Collision{}, false
		}
	}

	normal := minAxis
	if normal.Dot(box.Center().Sub(hull.Center())) < 0 {
		normal = normal.Mul(-1)
	}

	return Collision{
		Position: box.Center().Add(hull.Center()).Mul(0.5),
		Normal:   normal,
		Depth:    minDepth,
	}, true
}

func collideHullBox(hull, box Collider) (Collision, bool) {
	col, hit := collideBoxHull(box, hull)
	if !hit {
		return Collision{}, false
	}
	col.Normal = col.Normal.Mul(-1)
	return col, true
}

// collideHullHull runs the separating-axis test over both hulls' face
// normal sets. The normal points from b toward a.
func collideHullHull(a, b Collider) (Collision, bool) {
	vertsA := a.worldVertices()
	vertsB := b.worldVertices()

	minDepth := float32(math.MaxFloat32)
	var minAxis mgl32.Vec3
	tested := false

	testAxis := func(axis mgl32.Vec3) bool {
		loA, hiA := projectOntoAxis(vertsA[:], axis)
		loB, hiB := projectOntoAxis(vertsB[:], axis)
		overlap := minf(hiA, hiB) - maxf(loA, loB)
		if overlap <= 0 {
			return false
		}
		tested = true
		if overlap < minDepth {
			minDepth = overlap
			minAxis = axis
		}
		return true
	}

	for _, face := range a.Shape.Faces {
		if !testAxis(face.Normal) {
			return Collision{}, false
		}
	}
	for _, face := range b.Shape.Faces {
		if !testAxis(face.Normal) {
			return Collision{}, false
		}
	}
	// Fully degenerate hulls offer no axes and no contact.
	if !tested {
		return Collision{}, false
	}

	normal := minAxis
	if normal.Dot(a.Center().Sub(b.Center())) < 0 {
		normal = normal.Mul(-1)
	}

	return Collision{
		Position: a.Center().Add(b.Center()).Mul(0.5),
		Normal:   normal,
		Depth:    minDepth,
	}, true
}

// collideCapsuleHull finds the closest approach between the capsule segment
// and every hull face, then tests it against the capsule radius. The normal
// points from the hull surface toward the capsule.
func collideCapsuleHull(capsule, hull Collider) (Collision, bool) {
	p0 := capsule.Position.Add(capsule.Shape.SegStart)
	p1 := capsule.Position.Add(capsule.Shape.SegEnd)
	radius := capsule.Shape.Radius
	verts := hull.worldVertices()

	minDist := float32(math.MaxFloat32)
	var bestSeg, bestTri, bestNormal mgl32.Vec3

	for _, face := range hull.Shape.Faces {
		t0 := verts[face.Triangle[0]]
		t1 := verts[face.Triangle[1]]
		t2 := verts[face.Triangle[2]]

		// Segment parameter nearest the face plane: solve the endpoint
		// signed distances for their zero crossing and clamp.
		d0 := p0.Sub(t0).Dot(face.Normal)
		d1 := p1.Sub(t0).Dot(face.Normal)
		var t float32
		if denom := d0 - d1; absf(denom) > Epsilon {
			t = clampf(d0/denom, 0, 1)
		}
		segPoint := p0.Add(p1.Sub(p0).Mul(t))

		triPoint := closestPointOnTriangle(segPoint, t0, t1, t2)
		dist := segPoint.Sub(triPoint).Len()
		if dist < minDist {
			minDist = dist
			bestSeg = segPoint
			bestTri = triPoint
			bestNormal = face.Normal
		}
	}

	if minDist >= radius {
		return Collision{}, false
	}

	normal := bestNormal
	if minDist > Epsilon {
		normal = bestSeg.Sub(bestTri).Mul(1 / minDist)
	}
	depth := radius - minDist

	return Collision{
		Position: bestSeg.Sub(normal.Mul(depth / 2)),
		Normal:   normal,
		Depth:    depth,
	}, true
}

func collideHullCapsule(hull, capsule Collider) (Collision, bool) {
	col, hit := collideCapsuleHull(capsule, hull)
	if !hit {
		return Collision{}, false
	}
	col.Normal = col.Normal.Mul(-1)
	return col, true
}

// closestPointOnTriangle returns the point on triangle abc nearest p,
// classifying p against the vertex, edge, and interior regions.
func closestPointOnTriangle(p, a, b, c mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}
