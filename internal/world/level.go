package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"platform3d/internal/components"
	"platform3d/internal/engine"
)

// LevelSpec is one YAML document describing a sandbox scene: the player
// spawn plus a list of collidable objects.
type LevelSpec struct {
	Name    string       `yaml:"name"`
	Player  PlayerSpec   `yaml:"player"`
	Objects []ObjectSpec `yaml:"objects"`
}

// PlayerSpec places the player capsule. Position is the feet point; the
// capsule occupies [y, y+height].
type PlayerSpec struct {
	Position [3]float32 `yaml:"position"`
	Height   float32    `yaml:"height"`
	Radius   float32    `yaml:"radius"`
	MaxSpeed float32    `yaml:"max_speed"`
}

// ObjectSpec is one collidable object. Shape selects which size fields
// apply: half_extents for boxes, height/radius for capsules, vertices for
// hulls (4 to 8, lower ring then upper ring, both counter-clockwise).
type ObjectSpec struct {
	Name        string          `yaml:"name"`
	Shape       string          `yaml:"shape"`
	Position    [3]float32      `yaml:"position"`
	HalfExtents [3]float32      `yaml:"half_extents"`
	Height      float32         `yaml:"height"`
	Radius      float32         `yaml:"radius"`
	Vertices    [][3]float32    `yaml:"vertices"`
	Color       string          `yaml:"color"`
	Wireframe   bool            `yaml:"wireframe"`
	Tags        []string        `yaml:"tags"`
	Components  []ComponentSpec `yaml:"components"`
}

// ComponentSpec attaches a registered behavior component by name.
type ComponentSpec struct {
	Type  string         `yaml:"type"`
	Props map[string]any `yaml:"props"`
}

const (
	defaultPlayerHeight = 1.25
	defaultPlayerRadius = 0.25
)

// ParseLevel decodes and validates a level document. The returned spec is
// ready for ApplyLevel; every object has a name and a usable shape.
func ParseLevel(data []byte) (*LevelSpec, error) {
	var spec LevelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}

	if spec.Player.Height <= 0 {
		spec.Player.Height = defaultPlayerHeight
	}
	if spec.Player.Radius <= 0 {
		spec.Player.Radius = defaultPlayerRadius
	}
	if spec.Player.MaxSpeed <= 0 {
		spec.Player.MaxSpeed = components.DefaultMoveSpeed
	}

	for i := range spec.Objects {
		obj := &spec.Objects[i]
		if obj.Name == "" {
			obj.Name = fmt.Sprintf("Object_%d", i)
		}
		if err := validateObject(obj); err != nil {
			return nil, err
		}
	}
	return &spec, nil
}

func validateObject(obj *ObjectSpec) error {
	switch obj.Shape {
	case "box":
		for _, e := range obj.HalfExtents {
			if e <= 0 {
				return fmt.Errorf("level: object %q: box needs positive half_extents, got %v", obj.Name, obj.HalfExtents)
			}
		}
	case "capsule":
		if obj.Radius <= 0 {
			return fmt.Errorf("level: object %q: capsule needs a positive radius", obj.Name)
		}
		if obj.Height <= 0 {
			return fmt.Errorf("level: object %q: capsule needs a positive height", obj.Name)
		}
	case "hull":
		if len(obj.Vertices) < 4 || len(obj.Vertices) > 8 {
			return fmt.Errorf("level: object %q: hull needs 4 to 8 vertices, got %d", obj.Name, len(obj.Vertices))
		}
	default:
		return fmt.Errorf("level: object %q: unknown shape %q", obj.Name, obj.Shape)
	}
	return nil
}

// buildObject turns an ObjectSpec into a scene-ready GameObject: collider,
// static body, renderer, plus any behavior components the level attaches.
func buildObject(spec *ObjectSpec) (*engine.GameObject, error) {
	obj := engine.NewGameObject(spec.Name)
	obj.Transform.Position = vec3(spec.Position)
	obj.Tags = spec.Tags

	var collider *components.Collider
	switch spec.Shape {
	case "box":
		collider = components.NewBoxCollider(vec3(spec.HalfExtents))
	case "capsule":
		collider = components.NewCapsuleCollider(spec.Height, spec.Radius)
	case "hull":
		verts := make([]mgl32.Vec3, len(spec.Vertices))
		for i, v := range spec.Vertices {
			verts[i] = vec3(v)
		}
		collider = components.NewHullCollider(verts)
	}
	obj.AddComponent(collider)
	obj.AddComponent(components.NewStaticBody())

	renderer := components.NewShapeRenderer(colorByName(spec.Color))
	renderer.Wireframe = spec.Wireframe
	obj.AddComponent(renderer)

	for _, cs := range spec.Components {
		c := engine.CreateComponent(cs.Type, cs.Props)
		if c == nil {
			return nil, fmt.Errorf("level: object %q: unknown component %q (known: %v)",
				spec.Name, cs.Type, engine.RegisteredComponents())
		}
		obj.AddComponent(c)
	}
	return obj, nil
}

// buildPlayerRig returns the player object and its follow camera, wired to
// each other by ref.
func buildPlayerRig(spec *PlayerSpec) (*engine.GameObject, *engine.GameObject) {
	player := engine.NewGameObject("Player")
	player.Tags = []string{"player"}
	player.Transform.Position = vec3(spec.Position)
	player.AddComponent(components.NewCapsuleCollider(spec.Height, spec.Radius))
	player.AddComponent(components.NewKinematicBody(spec.MaxSpeed))
	move := components.NewMovementController()
	move.MaxSpeed = spec.MaxSpeed
	player.AddComponent(move)
	playerCtl := components.NewPlayerController()
	player.AddComponent(playerCtl)
	player.AddComponent(components.NewShapeRenderer(playerColor()))

	camera := engine.NewGameObject("MainCamera")
	followCam := components.NewFollowCamera()
	followCam.Target.Set(player)
	camera.AddComponent(followCam)
	playerCtl.Camera.Set(camera)

	return player, camera
}

// ApplyLevel replaces the current scene with the spec's contents. On error
// nothing is touched, so a broken reload keeps the running level alive.
func (w *World) ApplyLevel(spec *LevelSpec) error {
	objects := make([]*engine.GameObject, 0, len(spec.Objects)+2)
	for i := range spec.Objects {
		obj, err := buildObject(&spec.Objects[i])
		if err != nil {
			return err
		}
		objects = append(objects, obj)
	}
	player, camera := buildPlayerRig(&spec.Player)
	objects = append(objects, player, camera)

	w.Clear()
	for _, obj := range objects {
		w.Spawn(obj)
	}
	w.Scene.Start()
	w.LevelLoaded.Invoke(spec.Name)
	return nil
}

// LoadLevel parses and applies a level document in one call.
func (w *World) LoadLevel(data []byte) error {
	spec, err := ParseLevel(data)
	if err != nil {
		return err
	}
	return w.ApplyLevel(spec)
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
