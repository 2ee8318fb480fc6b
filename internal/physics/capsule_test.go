package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestClosestSegmentPoints(t *testing.T) {
	tests := []struct {
		name          string
		p1, q1        mgl32.Vec3
		p2, q2        mgl32.Vec3
		wantC1        mgl32.Vec3
		wantC2        mgl32.Vec3
		wantDist      float32
		uniqueWitness bool
	}{
		{
			name: "perpendicular skew",
			p1:   mgl32.Vec3{0, 0, 0}, q1: mgl32.Vec3{2, 0, 0},
			p2: mgl32.Vec3{1, 1, -1}, q2: mgl32.Vec3{1, 1, 1},
			wantC1: mgl32.Vec3{1, 0, 0}, wantC2: mgl32.Vec3{1, 1, 0},
			wantDist: 1, uniqueWitness: true,
		},
		{
			name: "clamped to endpoint",
			p1:   mgl32.Vec3{0, 0, 0}, q1: mgl32.Vec3{1, 0, 0},
			p2: mgl32.Vec3{3, 0, 1}, q2: mgl32.Vec3{3, 0, -1},
			wantC1: mgl32.Vec3{1, 0, 0}, wantC2: mgl32.Vec3{3, 0, 0},
			wantDist: 2, uniqueWitness: true,
		},
		{
			name: "point against segment",
			p1:   mgl32.Vec3{0, 0, 0}, q1: mgl32.Vec3{0, 0, 0},
			p2: mgl32.Vec3{1, -1, 0}, q2: mgl32.Vec3{1, 1, 0},
			wantC1: mgl32.Vec3{0, 0, 0}, wantC2: mgl32.Vec3{1, 0, 0},
			wantDist: 1, uniqueWitness: true,
		},
		{
			name: "point against point",
			p1:   mgl32.Vec3{0, 0, 0}, q1: mgl32.Vec3{0, 0, 0},
			p2: mgl32.Vec3{0, 3, 4}, q2: mgl32.Vec3{0, 3, 4},
			wantC1: mgl32.Vec3{0, 0, 0}, wantC2: mgl32.Vec3{0, 3, 4},
			wantDist: 5, uniqueWitness: true,
		},
		{
			name: "parallel overlap",
			p1:   mgl32.Vec3{0, 0, 0}, q1: mgl32.Vec3{2, 0, 0},
			p2: mgl32.Vec3{0, 1, 0}, q2: mgl32.Vec3{2, 1, 0},
			wantDist: 1, uniqueWitness: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c1, c2, _, _ := closestSegmentPoints(tt.p1, tt.q1, tt.p2, tt.q2)
			dist := c2.Sub(c1).Len()
			if !almostEqual(dist, tt.wantDist, 0.001) {
				t.Errorf("distance = %v, want %v", dist, tt.wantDist)
			}
			if tt.uniqueWitness {
				if !vecAlmostEqual(c1, tt.wantC1, 0.001) {
					t.Errorf("c1 = %v, want %v", c1, tt.wantC1)
				}
				if !vecAlmostEqual(c2, tt.wantC2, 0.001) {
					t.Errorf("c2 = %v, want %v", c2, tt.wantC2)
				}
			}

			// Swapping the segments must report the same distance, with the
			// witness points exchanged when they are unique.
			s1, s2, _, _ := closestSegmentPoints(tt.p2, tt.q2, tt.p1, tt.q1)
			if swapped := s2.Sub(s1).Len(); !almostEqual(swapped, tt.wantDist, 0.001) {
				t.Errorf("swapped distance = %v, want %v", swapped, tt.wantDist)
			}
			if tt.uniqueWitness {
				if !vecAlmostEqual(s1, c2, 0.001) || !vecAlmostEqual(s2, c1, 0.001) {
					t.Errorf("swapped witnesses = %v, %v, want %v, %v", s1, s2, c2, c1)
				}
			}
		})
	}
}

func TestCapsuleCapsuleSideContact(t *testing.T) {
	a := NewVerticalCapsule(1, 0.25, mgl32.Vec3{0, 0, 0})
	b := NewVerticalCapsule(1, 0.25, mgl32.Vec3{0.4, 0, 0})

	col, hit := a.CheckCollision(b)
	if !hit {
		t.Fatal("Expected side-by-side capsules to collide")
	}
	if !vecAlmostEqual(col.Normal, mgl32.Vec3{1, 0, 0}, 0.001) {
		t.Errorf("Normal = %v, want {1 0 0}", col.Normal)
	}
	if !almostEqual(col.Depth, 0.1, 0.001) {
		t.Errorf("Depth = %v, want 0.1", col.Depth)
	}
	if !almostEqual(col.Position[0], 0.2, 0.001) {
		t.Errorf("Position.X = %v, want 0.2", col.Position[0])
	}

	// Swapped order flips the normal toward the other capsule.
	col, hit = b.CheckCollision(a)
	if !hit {
		t.Fatal("Expected collision in swapped order")
	}
	if !vecAlmostEqual(col.Normal, mgl32.Vec3{-1, 0, 0}, 0.001) {
		t.Errorf("Swapped normal = %v, want {-1 0 0}", col.Normal)
	}
}

func TestCapsuleCapsuleCrossContact(t *testing.T) {
	post := NewVerticalCapsule(1, 0.25, mgl32.Vec3{0, 0, 0})
	beam := NewCapsule(mgl32.Vec3{-0.5, 0, 0}, mgl32.Vec3{0.5, 0, 0}, 0.25, mgl32.Vec3{0, 0.9, 0})

	col, hit := post.CheckCollision(beam)
	if !hit {
		t.Fatal("Expected crossing capsules to collide")
	}
	if !vecAlmostEqual(col.Normal, mgl32.Vec3{0, 1, 0}, 0.001) {
		t.Errorf("Normal = %v, want {0 1 0}", col.Normal)
	}
	if !almostEqual(col.Depth, 0.35, 0.001) {
		t.Errorf("Depth = %v, want 0.35", col.Depth)
	}
}

func TestCapsuleCapsuleCoincident(t *testing.T) {
	a := NewVerticalCapsule(1, 0.25, mgl32.Vec3{2, 1, 2})
	b := NewVerticalCapsule(1, 0.25, mgl32.Vec3{2, 1, 2})

	col, hit := a.CheckCollision(b)
	if !hit {
		t.Fatal("Expected coincident capsules to collide")
	}
	// Degenerate direction falls back to +X so the solver always receives a
	// unit normal.
	if !vecAlmostEqual(col.Normal, mgl32.Vec3{1, 0, 0}, 0.001) {
		t.Errorf("Normal = %v, want fallback {1 0 0}", col.Normal)
	}
	if !almostEqual(col.Depth, 0.5, 0.001) {
		t.Errorf("Depth = %v, want 0.5", col.Depth)
	}
}

func TestCapsuleCapsuleSeparated(t *testing.T) {
	a := NewVerticalCapsule(1, 0.25, mgl32.Vec3{0, 0, 0})

	// Separated by a clear gap.
	far := NewVerticalCapsule(1, 0.25, mgl32.Vec3{1, 0, 0})
	if _, hit := a.CheckCollision(far); hit {
		t.Error("Expected no collision for separated capsules")
	}

	// Touching at exactly the radius sum also counts as separated.
	touching := NewVerticalCapsule(1, 0.25, mgl32.Vec3{0.5, 0, 0})
	if _, hit := a.CheckCollision(touching); hit {
		t.Error("Expected no collision at exact touching distance")
	}
}
