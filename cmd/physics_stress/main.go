// Stress tool comparing the CPU spatial grid against the GPU sphere scan as
// candidate sources for the overlap pair query. Both paths run the same
// narrow-phase confirmation, so their pair counts must agree.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/compute"
	"platform3d/internal/physics"
)

const iterations = 10

func main() {
	info, err := compute.Initialize()
	if err != nil {
		panic(fmt.Sprintf("Failed to init compute: %v", err))
	}
	fmt.Printf("GPU: %s | %s | %s\n\n", info.Backend, info.Vendor, info.Name)

	for _, count := range []int{256, 512, 1024, 2048, 4096, 8192} {
		runScenario(count)
	}
}

// runScenario fills a world with half kinematic capsules, half static boxes,
// then times the overlap query with grid candidates against GPU candidates.
func runScenario(count int) {
	world := buildWorld(count)

	scan, err := compute.NewBroadPhase(uint32(count), uint32(count*20))
	if err != nil {
		fmt.Printf("%5d bodies: GPU ERROR: %v\n", count, err)
		return
	}
	defer scan.Release()

	// Warm up both paths.
	world.OverlapPairs(nil)
	if _, err := scan.ScanPairs(boundingSpheres(world.Bodies())); err != nil {
		fmt.Printf("%5d bodies: GPU ERROR: %v\n", count, err)
		return
	}

	gridStart := time.Now()
	var gridPairs []physics.OverlapPair
	for i := 0; i < iterations; i++ {
		gridPairs = world.OverlapPairs(nil)
	}
	gridTime := time.Since(gridStart) / iterations

	// The GPU path rebuilds the sphere upload every pass, the way the
	// sandbox world does per tick.
	gpuStart := time.Now()
	var gpuPairs []physics.OverlapPair
	for i := 0; i < iterations; i++ {
		candidates, err := scan.ScanPairs(boundingSpheres(world.Bodies()))
		if err != nil {
			fmt.Printf("%5d bodies: GPU ERROR: %v\n", count, err)
			return
		}
		gpuPairs = world.OverlapPairs(candidates)
	}
	gpuTime := time.Since(gpuStart) / iterations

	speedup := float64(gridTime) / float64(gpuTime)
	fmt.Printf("%5d bodies: grid %8v (%5d pairs) | gpu %8v (%5d pairs) | %.1fx speedup\n",
		count, gridTime.Round(time.Microsecond), len(gridPairs),
		gpuTime.Round(time.Microsecond), len(gpuPairs), speedup)

	if len(gridPairs) != len(gpuPairs) {
		fmt.Printf("       MISMATCH: confirmed pair counts differ\n")
	}
}

func buildWorld(count int) *physics.World {
	world := physics.NewWorld()
	rng := rand.New(rand.NewSource(42))

	// Spawn volume grows with the body count to keep contact density flat.
	extent := float32(40) + float32(count)/50

	for i := 0; i < count; i++ {
		pos := mgl32.Vec3{
			rng.Float32()*extent - extent/2,
			rng.Float32() * 4,
			rng.Float32()*extent - extent/2,
		}
		if i%2 == 0 {
			world.AddBody(physics.NewKinematicBody(
				physics.NewVerticalCapsule(1.25, 0.25, pos), 3.5))
		} else {
			half := mgl32.Vec3{
				0.5 + rng.Float32(),
				0.5 + rng.Float32(),
				0.5 + rng.Float32(),
			}
			world.AddBody(physics.NewStaticBody(physics.NewBox(half, pos)))
		}
	}
	return world
}

// boundingSpheres reduces every collider to its scan sphere, mirroring the
// per-tick upload the sandbox world does.
func boundingSpheres(bodies []*physics.Body) []compute.BoundingSphere {
	spheres := make([]compute.BoundingSphere, len(bodies))
	for i, b := range bodies {
		col := b.Collider
		col.Position = b.Position
		center := col.Center()
		spheres[i] = compute.BoundingSphere{
			X: center[0], Y: center[1], Z: center[2],
			Radius: col.BoundingRadius(),
		}
	}
	return spheres
}
