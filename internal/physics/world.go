package physics

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// CellSize is the spatial hash cell edge. Kinematic bodies in the same or
// neighboring cells become candidate pairs; statics are swept separately
// because level geometry is often larger than a cell.
const CellSize = 5.0

// parallelSolveThreshold is the kinematic body count above which the solve
// phase fans out across goroutines. Below it, goroutine overhead beats the
// gain.
const parallelSolveThreshold = 64

// CellKey addresses one spatial hash cell.
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos mgl32.Vec3) CellKey {
	return CellKey{
		X: int(pos[0] / CellSize),
		Y: int(pos[1] / CellSize),
		Z: int(pos[2] / CellSize),
	}
}

// OverlapPair is one confirmed contact between two bodies.
type OverlapPair struct {
	A, B    *Body
	Contact Collision
}

// World owns the collider set and runs the movement solver. It is not safe
// for concurrent use; Step manages its own internal fan-out.
type World struct {
	Tuning Tuning

	bodies []*Body
	grid   map[CellKey][]int32
}

// NewWorld returns an empty world with default tuning.
func NewWorld() *World {
	return &World{
		Tuning: DefaultTuning(),
		grid:   make(map[CellKey][]int32),
	}
}

// AddBody inserts a body into the world.
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody drops a body. Bodies() indices after it shift down.
func (w *World) RemoveBody(b *Body) {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns the live body list in index order. OverlapPairs candidates
// refer to these indices.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step advances the world one tick: refresh collider placements from the
// authoritative positions, solve every kinematic body against the frozen
// collider set, then commit all displacements. The two phases keep solves
// independent of each other regardless of iteration or goroutine order.
func (w *World) Step(dt float32) {
	// 1. Placement refresh.
	movers := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		b.Collider.Position = b.Position
		if b.Kind == BodyKinematic {
			movers = append(movers, b)
		}
	}

	// 2. Solve phase. Each solve writes only its own body, so the fan-out
	// needs nothing beyond a barrier.
	if len(movers) >= parallelSolveThreshold {
		workers := runtime.NumCPU()
		chunk := (len(movers) + workers - 1) / workers

		var wg sync.WaitGroup
		for start := 0; start < len(movers); start += chunk {
			end := start + chunk
			if end > len(movers) {
				end = len(movers)
			}
			wg.Add(1)
			go func(batch []*Body) {
				defer wg.Done()
				for _, b := range batch {
					w.solveBody(b, dt)
				}
			}(movers[start:end])
		}
		wg.Wait()
	} else {
		for _, b := range movers {
			w.solveBody(b, dt)
		}
	}

	// 3. Commit phase.
	for _, b := range movers {
		b.Position = b.Position.Add(b.Displacement)
	}
}

// OverlapPairs returns every colliding pair that involves at least one
// kinematic body. With nil candidates the spatial grid supplies them;
// callers with their own broad phase (such as a GPU scan) pass its index
// pairs instead. Every candidate is confirmed by the narrow phase.
func (w *World) OverlapPairs(candidates [][2]int32) []OverlapPair {
	for _, b := range w.bodies {
		b.Collider.Position = b.Position
	}
	if candidates == nil {
		candidates = w.gridCandidates()
	}

	pairs := make([]OverlapPair, 0, len(candidates))
	for _, cand := range candidates {
		a, b := int(cand[0]), int(cand[1])
		if a < 0 || b < 0 || a >= len(w.bodies) || b >= len(w.bodies) || a == b {
			continue
		}
		bodyA, bodyB := w.bodies[a], w.bodies[b]
		if bodyA.Kind == BodyStatic && bodyB.Kind == BodyStatic {
			continue
		}
		col, hit := bodyA.Collider.CheckCollision(bodyB.Collider)
		if !hit {
			continue
		}
		pairs = append(pairs, OverlapPair{A: bodyA, B: bodyB, Contact: col})
	}
	return pairs
}

// gridCandidates collects candidate index pairs: kinematic bodies against
// their 3x3x3 cell neighborhood, plus every kinematic-static combination.
func (w *World) gridCandidates() [][2]int32 {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for i, b := range w.bodies {
		if b.Kind != BodyKinematic {
			continue
		}
		cell := posToCell(b.Collider.Position)
		w.grid[cell] = append(w.grid[cell], int32(i))
	}

	var out [][2]int32
	seen := make(map[[2]int32]bool)
	for i, b := range w.bodies {
		if b.Kind != BodyKinematic {
			continue
		}
		cell := posToCell(b.Collider.Position)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
					for _, j := range w.grid[key] {
						if int(j) == i {
							continue
						}
						pair := [2]int32{int32(i), j}
						if pair[0] > pair[1] {
							pair[0], pair[1] = pair[1], pair[0]
						}
						if seen[pair] {
							continue
						}
						seen[pair] = true
						out = append(out, pair)
					}
				}
			}
		}
	}

	for i, b := range w.bodies {
		if b.Kind != BodyKinematic {
			continue
		}
		for j, other := range w.bodies {
			if other.Kind != BodyStatic {
				continue
			}
			out = append(out, [2]int32{int32(i), int32(j)})
		}
	}
	return out
}
