package world

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/components"
	"platform3d/internal/compute"
	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

// gpuScanThreshold is the body count at which the collision event query
// switches from the CPU grid to the GPU pair scan. Below it the upload
// overhead costs more than the grid walk saves.
const gpuScanThreshold = 256

// PairScanner finds candidate collision pairs from bounding spheres.
// *compute.BroadPhase implements it.
type PairScanner interface {
	ScanPairs(spheres []compute.BoundingSphere) ([][2]int32, error)
}

// binding ties a scene object to its physics body. The offset reproduces
// the collider component's local offset in both sync directions.
type binding struct {
	object   *engine.GameObject
	body     *physics.Body
	offset   mgl32.Vec3
	movement *components.MovementController
}

// World bridges the GameObject scene and the physics world. Per Update:
// components run, transforms push into static bodies, movement intents
// drain into kinematic ones, the solver steps, solved positions write back
// to transforms, and the overlap diff dispatches collision events.
type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	// LevelLoaded fires with the level name after ApplyLevel swaps the
	// scene.
	LevelLoaded engine.EventWithArg[string]

	scanner     PairScanner
	gpuActive   bool
	bindings    []binding
	byBody      map[*physics.Body]*engine.GameObject
	activePairs map[[2]uint64][2]*engine.GameObject
	lastPairs   []physics.OverlapPair
}

func New() *World {
	return &World{
		Scene:       engine.NewScene("Main"),
		Physics:     physics.NewWorld(),
		byBody:      make(map[*physics.Body]*engine.GameObject),
		activePairs: make(map[[2]uint64][2]*engine.GameObject),
	}
}

// UseScanner hands the world a GPU broad phase for the event query. The
// world still falls back to the CPU grid below the body threshold or when
// a scan fails.
func (w *World) UseScanner(s PairScanner) {
	w.scanner = s
}

// Spawn adds the object to the scene and, when it carries a Collider and a
// PhysicsBody, registers it with the solver.
func (w *World) Spawn(obj *engine.GameObject) {
	w.Scene.AddGameObject(obj)

	collider := engine.GetComponent[*components.Collider](obj)
	pb := engine.GetComponent[*components.PhysicsBody](obj)
	if collider == nil || pb == nil {
		return
	}

	built := collider.Build()
	var body *physics.Body
	if pb.Kinematic {
		body = physics.NewKinematicBody(built, pb.MaxSpeed)
	} else {
		body = physics.NewStaticBody(built)
	}
	w.Physics.AddBody(body)
	pb.Bind(body)

	w.bindings = append(w.bindings, binding{
		object:   obj,
		body:     body,
		offset:   collider.Offset,
		movement: engine.GetComponent[*components.MovementController](obj),
	})
	w.byBody[body] = obj
}

// Despawn removes the object from scene and solver and closes out any
// collision pairs it was part of.
func (w *World) Despawn(obj *engine.GameObject) {
	for i, b := range w.bindings {
		if b.object != obj {
			continue
		}
		w.Physics.RemoveBody(b.body)
		delete(w.byBody, b.body)
		w.bindings = append(w.bindings[:i], w.bindings[i+1:]...)
		break
	}

	for key, objs := range w.activePairs {
		if objs[0] == obj || objs[1] == obj {
			notifyExit(objs[0], objs[1])
			notifyExit(objs[1], objs[0])
			delete(w.activePairs, key)
		}
	}

	w.Scene.RemoveGameObject(obj)
}

// Clear drops the whole scene but keeps the tuning, so panel edits survive
// level reloads.
func (w *World) Clear() {
	tuning := w.Physics.Tuning
	w.Physics = physics.NewWorld()
	w.Physics.Tuning = tuning
	w.Scene = engine.NewScene(w.Scene.Name)
	w.bindings = nil
	w.byBody = make(map[*physics.Body]*engine.GameObject)
	w.activePairs = make(map[[2]uint64][2]*engine.GameObject)
	w.lastPairs = nil
	w.gpuActive = false
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)

	// Transforms are authoritative for static bodies so platform animation
	// moves real colliders; the solver is authoritative for kinematic ones.
	for _, b := range w.bindings {
		if b.body.Kind == physics.BodyStatic {
			b.body.Position = b.object.WorldPosition().Add(b.offset)
		}
		if b.movement != nil {
			b.body.Intent = b.movement.TakeIntent()
			b.body.MaxSpeed = b.movement.MaxSpeed
		}
	}

	w.Physics.Step(deltaTime)

	for _, b := range w.bindings {
		if b.body.Kind == physics.BodyKinematic {
			b.object.Transform.Position = b.body.Position.Sub(b.offset)
		}
	}

	w.dispatchCollisionEvents()
}

// LastPairs returns the contacts from the most recent Update, for the
// debug overlay.
func (w *World) LastPairs() []physics.OverlapPair {
	return w.lastPairs
}

func (w *World) dispatchCollisionEvents() {
	pairs := w.Physics.OverlapPairs(w.candidates())
	w.lastPairs = pairs

	current := make(map[[2]uint64][2]*engine.GameObject, len(pairs))
	for _, pair := range pairs {
		a, b := w.byBody[pair.A], w.byBody[pair.B]
		if a == nil || b == nil {
			continue
		}
		current[pairKey(a, b)] = [2]*engine.GameObject{a, b}
	}

	for key, objs := range current {
		if _, seen := w.activePairs[key]; !seen {
			notifyEnter(objs[0], objs[1])
			notifyEnter(objs[1], objs[0])
		}
	}
	for key, objs := range w.activePairs {
		if _, still := current[key]; !still {
			notifyExit(objs[0], objs[1])
			notifyExit(objs[1], objs[0])
		}
	}
	w.activePairs = current
}

// candidates picks the broad phase for the event query: nil selects the
// physics world's own grid, otherwise the GPU scan supplies index pairs.
func (w *World) candidates() [][2]int32 {
	bodies := w.Physics.Bodies()

	useGPU := w.scanner != nil && len(bodies) >= gpuScanThreshold
	if useGPU != w.gpuActive {
		w.gpuActive = useGPU
		if useGPU {
			log.Printf("Physics: GPU pair scan enabled (%d bodies)", len(bodies))
		} else {
			log.Printf("Physics: GPU pair scan disabled (%d bodies)", len(bodies))
		}
	}
	if !useGPU {
		return nil
	}

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

	pairs, err := w.scanner.ScanPairs(spheres)
	if err != nil {
		log.Printf("Warning: GPU pair scan failed, using grid: %v", err)
		return nil
	}
	return pairs
}

func pairKey(a, b *engine.GameObject) [2]uint64 {
	if a.UID < b.UID {
		return [2]uint64{a.UID, b.UID}
	}
	return [2]uint64{b.UID, a.UID}
}

func notifyEnter(obj, other *engine.GameObject) {
	for _, c := range obj.Components() {
		if h, ok := c.(engine.CollisionHandler); ok {
			h.OnCollisionEnter(other)
		}
	}
}

func notifyExit(obj, other *engine.GameObject) {
	for _, c := range obj.Components() {
		if h, ok := c.(engine.CollisionHandler); ok {
			h.OnCollisionExit(other)
		}
	}
}
