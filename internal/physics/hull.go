package physics

import "github.com/go-gl/mathgl/mgl32"

// Face is one triangle of a convex hull. Triangle indexes the hull's vertex
// array; Normal is unit length and points out of the hull.
type Face struct {
	Triangle [3]int
	Normal   mgl32.Vec3
}

// hullQuads lists the three pairs of opposite quads over the 8-vertex ring
// layout (lower ring 0-3, upper ring 4-7). Corner order is counter-clockwise
// seen from outside the hull.
var hullQuads = [6][4]int{
	{2, 3, 5, 6}, // +X
	{0, 1, 7, 4}, // -X
	{4, 7, 6, 5}, // +Y
	{0, 3, 2, 1}, // -Y
	{1, 2, 6, 7}, // +Z
	{0, 4, 5, 3}, // -Z
}

// buildHullFaces derives the triangular faces of a convex hull from its
// eight vertices. Each quad contributes up to two triangles: duplicate
// corners merge by exact equality, a three-corner quad yields a single
// triangle, and a full quad splits along the diagonal that keeps the quad
// centroid behind the trial face.
func buildHullFaces(verts [8]mgl32.Vec3) []Face {
	faces := make([]Face, 0, 12)

	for _, quad := range hullQuads {
		// Merge duplicate corners, preserving winding order.
		unique := make([]int, 0, 4)
		for _, idx := range quad {
			dup := false
			for _, kept := range unique {
				if verts[idx] == verts[kept] {
					dup = true
					break
				}
			}
			if !dup {
				unique = append(unique, idx)
			}
		}

		switch len(unique) {
		case 4:
			a, b, c, d := unique[0], unique[1], unique[2], unique[3]
			trial := verts[b].Sub(verts[a]).Cross(verts[c].Sub(verts[a]))
			centroid := verts[a].Add(verts[b]).Add(verts[c]).Add(verts[d]).Mul(0.25)
			if trial.Dot(centroid.Sub(verts[a])) >= 0 {
				// Centroid in front of the trial face: split on the other
				// diagonal so it falls behind.
				a, b, c, d = b, c, d, a
			}
			faces = appendFace(faces, verts, a, b, c)
			faces = appendFace(faces, verts, a, c, d)
		case 3:
			faces = appendFace(faces, verts, unique[0], unique[1], unique[2])
		}
		// Fewer than three unique corners contributes no faces.
	}

	return faces
}

// appendFace adds triangle (a, b, c) unless its area is degenerate.
func appendFace(faces []Face, verts [8]mgl32.Vec3, a, b, c int) []Face {
	cross := verts[b].Sub(verts[a]).Cross(verts[c].Sub(verts[a]))
	if cross.Len() < Epsilon {
		return faces
	}
	return append(faces, Face{
		Triangle: [3]int{a, b, c},
		Normal:   cross.Normalize(),
	})
}
