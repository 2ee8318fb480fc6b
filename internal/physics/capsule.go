package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// closestSegmentPoints returns the closest points between segments p1q1 and
// p2q2 together with their clamped parameters in [0,1]. Degenerate segments
// are treated as points; near-parallel segments fall back to projecting an
// endpoint.
func closestSegmentPoints(p1, q1, p2, q2 mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, float32, float32) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float32
	switch {
	case a <= Epsilon && e <= Epsilon:
		// Both segments are points.
	case a <= Epsilon:
		t = clampf(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= Epsilon {
			s = clampf(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > Epsilon {
				s = clampf((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampf(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampf((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t)), s, t
}

// collideCapsuleCapsule tests two capsules via the closest points between
// their segments. The normal points from a's closest point toward b's.
func collideCapsuleCapsule(a, b Collider) (Collision, bool) {
	c1, c2, _, _ := closestSegmentPoints(
		a.Position.Add(a.Shape.SegStart),
		a.Position.Add(a.Shape.SegEnd),
		b.Position.Add(b.Shape.SegStart),
		b.Position.Add(b.Shape.SegEnd),
	)

	delta := c2.Sub(c1)
	dist := delta.Len()
	radiusSum := a.Shape.Radius + b.Shape.Radius
	if dist >= radiusSum {
		return Collision{}, false
	}

	// Coincident closest points leave no direction to push along.
	normal := mgl32.Vec3{1, 0, 0}
	if dist > Epsilon {
		normal = delta.Mul(1 / dist)
	}

	return Collision{
		Position: c1.Add(c2).Mul(0.5),
		Normal:   normal,
		Depth:    radiusSum - dist,
	}, true
}

// segmentBoxClosest finds the segment point nearest an origin-centered box
// by evaluating the segment parameters where it crosses each slab plane,
// plus both endpoints, and keeping the candidate closest to the box. It
// returns the segment point and its clamp onto the box, in box-local space.
func segmentBoxClosest(s0, s1, half mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	d := s1.Sub(s0)

	bestT := float32(0)
	bestDistSq := float32(math.MaxFloat32)
	try := func(t float32) {
		p := s0.Add(d.Mul(t))
		q := clampToBox(p, half)
		if distSq := p.Sub(q).LenSqr(); distSq < bestDistSq {
			bestDistSq = distSq
			bestT = t
		}
	}

	try(0)
	try(1)
	for i := 0; i < 3; i++ {
		if absf(d[i]) < Epsilon {
			continue
		}
		try(clampf((half[i]-s0[i])/d[i], 0, 1))
		try(clampf((-half[i]-s0[i])/d[i], 0, 1))
	}

	p := s0.Add(d.Mul(bestT))
	return p, clampToBox(p, half)
}

func clampToBox(p, half mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		clampf(p[0], -half[0], half[0]),
		clampf(p[1], -half[1], half[1]),
		clampf(p[2], -half[2], half[2]),
	}
}

// leastPenetrationAxis picks the axis on which the box-local point sits
// least deep inside the box relative to its center, ties resolving X then Y
// then Z. The returned normal is the unit axis signed toward the point's
// side; the returned depth is the remaining extent on that axis (negative
// when the point is outside).
func leastPenetrationAxis(p, half mgl32.Vec3) (mgl32.Vec3, float32) {
	axis := 0
	minPen := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		pen := half[i] - absf(p[i])
		if pen < minPen {
			minPen = pen
			axis = i
		}
	}

	var normal mgl32.Vec3
	if p[axis] < 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}
	return normal, minPen
}

// collideBoxCapsule tests a box against a capsule. The normal is the axis
// of least penetration relative to the box center, signed so it points from
// the box toward the capsule.
func collideBoxCapsule(box, capsule Collider) (Collision, bool) {
	s0 := capsule.Position.Add(capsule.Shape.SegStart).Sub(box.Position)
	s1 := capsule.Position.Add(capsule.Shape.SegEnd).Sub(box.Position)
	half := box.Shape.HalfExtents
	radius := capsule.Shape.Radius

	p, q := segmentBoxClosest(s0, s1, half)
	dist := p.Sub(q).Len()
	if dist > radius {
		return Collision{}, false
	}

	normal, axisPen := leastPenetrationAxis(p, half)
	depth := radius - dist
	if dist <= Epsilon {
		// Segment point inside the box: the capsule overlaps past the
		// surface by the remaining axis extent.
		depth = radius + axisPen
	}

	return Collision{
		Position: box.Position.Add(q),
		Normal:   normal,
		Depth:    depth,
	}, true
}

// collideCapsuleBox reuses the box-capsule geometry with the capsule first.
// The normal still points from the box toward the capsule, but along the
// exact surface direction rather than the quantized axis, so the two
// orderings are not negations of each other.
func collideCapsuleBox(capsule, box Collider) (Collision, bool) {
	s0 := capsule.Position.Add(capsule.Shape.SegStart).Sub(box.Position)
	s1 := capsule.Position.Add(capsule.Shape.SegEnd).Sub(box.Position)
	half := box.Shape.HalfExtents
	radius := capsule.Shape.Radius

	p, q := segmentBoxClosest(s0, s1, half)
	delta := p.Sub(q)
	dist := delta.Len()
	if dist > radius {
		return Collision{}, false
	}

	var normal mgl32.Vec3
	depth := radius - dist
	if dist > Epsilon {
		normal = delta.Mul(1 / dist)
	} else {
		axisNormal, axisPen := leastPenetrationAxis(p, half)
		normal = axisNormal
		depth = radius + axisPen
	}

	return Collision{
		Position: box.Position.Add(q),
		Normal:   normal,
		Depth:    depth,
	}, true
}
