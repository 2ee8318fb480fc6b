package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAddRemoveBodies(t *testing.T) {
	w := NewWorld()
	a := NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 0}))
	b := NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{10, 0, 0}))
	c := NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{20, 0, 0}))
	w.AddBody(a)
	w.AddBody(b)
	w.AddBody(c)

	if len(w.Bodies()) != 3 {
		t.Fatalf("Expected 3 bodies, got %d", len(w.Bodies()))
	}

	w.RemoveBody(b)
	bodies := w.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("Expected 2 bodies after removal, got %d", len(bodies))
	}
	if bodies[0] != a || bodies[1] != c {
		t.Error("Expected removal to preserve the order of the remaining bodies")
	}

	// Removing a body that is not in the world is a no-op.
	w.RemoveBody(b)
	if len(w.Bodies()) != 2 {
		t.Errorf("Expected 2 bodies, got %d", len(w.Bodies()))
	}
}

func TestPosToCell(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
		want CellKey
	}{
		{"origin", mgl32.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"inside first cell", mgl32.Vec3{4.9, 4.9, 4.9}, CellKey{0, 0, 0}},
		{"next cell over", mgl32.Vec3{5.1, 0, 0}, CellKey{1, 0, 0}},
		{"negative side", mgl32.Vec3{-5.1, 0, 2}, CellKey{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := posToCell(tt.pos); got != tt.want {
				t.Errorf("posToCell(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestOverlapPairsFindsRestingContact(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloorBody())
	player := newPlayerBody(mgl32.Vec3{0, 0, 0})
	w.AddBody(player)

	pairs := w.OverlapPairs(nil)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 overlap pair, got %d", len(pairs))
	}
	if !almostEqual(pairs[0].Contact.Normal.Len(), 1, 0.001) {
		t.Errorf("Contact normal %v is not unit length", pairs[0].Contact.Normal)
	}
	if pairs[0].A != player && pairs[0].B != player {
		t.Error("Expected the pair to involve the kinematic body")
	}
}

func TestOverlapPairsSkipsStaticPairs(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 0})))
	w.AddBody(NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.5, 0, 0})))

	if pairs := w.OverlapPairs(nil); len(pairs) != 0 {
		t.Errorf("Expected no pairs between static bodies, got %d", len(pairs))
	}
}

func TestOverlapPairsKinematicNeighbors(t *testing.T) {
	w := NewWorld()
	w.AddBody(newPlayerBody(mgl32.Vec3{0, 0, 0}))
	w.AddBody(newPlayerBody(mgl32.Vec3{0.3, 0, 0}))
	// Too far for the cell neighborhood and for any contact.
	w.AddBody(newPlayerBody(mgl32.Vec3{100, 0, 0}))

	pairs := w.OverlapPairs(nil)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair between the touching movers, got %d", len(pairs))
	}
	if !almostEqual(pairs[0].Contact.Depth, 0.2, 0.001) {
		t.Errorf("Contact depth = %v, want 0.2", pairs[0].Contact.Depth)
	}
}

func TestOverlapPairsExplicitCandidates(t *testing.T) {
	w := NewWorld()
	w.AddBody(newFloorBody())
	w.AddBody(newPlayerBody(mgl32.Vec3{0, 0, 0}))

	// A caller-provided candidate list replaces the grid sweep.
	pairs := w.OverlapPairs([][2]int32{{0, 1}})
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair from explicit candidates, got %d", len(pairs))
	}

	// Out-of-range and self pairs are dropped instead of panicking.
	pairs = w.OverlapPairs([][2]int32{{-1, 1}, {0, 9}, {1, 1}})
	if len(pairs) != 0 {
		t.Errorf("Expected invalid candidates to produce no pairs, got %d", len(pairs))
	}

	// An empty non-nil list means the caller found nothing; the grid is not
	// consulted.
	pairs = w.OverlapPairs([][2]int32{})
	if len(pairs) != 0 {
		t.Errorf("Expected no pairs for an empty candidate list, got %d", len(pairs))
	}
}

func TestOverlapPairsRefreshesPlacements(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewStaticBody(NewBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{50, 0, 0})))
	player := newPlayerBody(mgl32.Vec3{0, 0, 0})
	w.AddBody(player)

	if pairs := w.OverlapPairs(nil); len(pairs) != 0 {
		t.Fatalf("Expected no pairs while apart, got %d", len(pairs))
	}

	// Teleport by writing the position directly; the next query must see
	// the collider at the new placement without an intervening Step.
	player.Position = mgl32.Vec3{50, 0.9, 0}
	if pairs := w.OverlapPairs(nil); len(pairs) != 1 {
		t.Errorf("Expected 1 pair after moving the body, got %d", len(pairs))
	}
}

func TestParallelSolveMatchesSingle(t *testing.T) {
	const movers = 80
	const ticks = 12
	const dt = 1.0 / 60.0

	build := func(count int) (*World, []*Body) {
		w := NewWorld()
		w.AddBody(NewStaticBody(NewBox(mgl32.Vec3{500, 0.5, 500}, mgl32.Vec3{0, -0.5, 0})))
		bodies := make([]*Body, count)
		for i := range bodies {
			pos := mgl32.Vec3{float32(i) * 6, 0.5, 0}
			bodies[i] = newPlayerBody(pos)
			w.AddBody(bodies[i])
		}
		return w, bodies
	}

	// Enough movers to cross the fan-out threshold, against a single
	// reference mover solved inline. Spawned half a unit up, every body
	// falls, lands and beds in identically.
	parallel, parallelBodies := build(movers)
	reference, referenceBodies := build(1)
	for i := 0; i < ticks; i++ {
		parallel.Step(dt)
		reference.Step(dt)
	}

	want := referenceBodies[0]
	if !want.Grounded {
		t.Fatal("Expected the reference mover to land within the run")
	}
	for i, b := range parallelBodies {
		if !almostEqual(b.Position[1], want.Position[1], 0.0001) {
			t.Errorf("Mover %d height = %v, want %v", i, b.Position[1], want.Position[1])
		}
		if !almostEqual(b.Position[0], float32(i)*6, 0.0001) {
			t.Errorf("Mover %d drifted to x = %v", i, b.Position[0])
		}
		if b.Grounded != want.Grounded {
			t.Errorf("Mover %d grounded = %v, want %v", i, b.Grounded, want.Grounded)
		}
	}
}
