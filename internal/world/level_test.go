package world

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"platform3d/internal/components"
	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

const sampleLevel = `
name: test-arena
player:
  position: [0, 0, 0]
  max_speed: 5
objects:
  - name: Floor
    shape: box
    position: [0, -0.5, 0]
    half_extents: [10, 0.5, 10]
    color: gray
    tags: [level]
  - name: Ramp
    shape: hull
    position: [4, 0, 0]
    color: skyblue
    wireframe: true
    vertices:
      - [-2, 0, -2]
      - [-2, 0, 2]
      - [2, 0, 2]
      - [2, 0, -2]
      - [-2, 0, -2]
      - [2, 2, -2]
      - [2, 2, 2]
      - [-2, 0, 2]
  - name: Ferry
    shape: box
    position: [-3, 1, 0]
    half_extents: [1, 0.1, 1]
    color: purple
    components:
      - type: platform
        props:
          axis: [0, 0, 1]
          distance: 3
          duration: 2
`

func TestParseLevelDefaults(t *testing.T) {
	spec, err := ParseLevel([]byte("name: bare\nplayer:\n  position: [1, 2, 3]\n"))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if spec.Name != "bare" {
		t.Errorf("name = %q, want bare", spec.Name)
	}
	if spec.Player.Position != [3]float32{1, 2, 3} {
		t.Errorf("player position = %v", spec.Player.Position)
	}
	if spec.Player.Height != defaultPlayerHeight {
		t.Errorf("player height = %v, want default %v", spec.Player.Height, float32(defaultPlayerHeight))
	}
	if spec.Player.Radius != defaultPlayerRadius {
		t.Errorf("player radius = %v, want default %v", spec.Player.Radius, float32(defaultPlayerRadius))
	}
	if spec.Player.MaxSpeed != components.DefaultMoveSpeed {
		t.Errorf("player max speed = %v, want default %v", spec.Player.MaxSpeed, float32(components.DefaultMoveSpeed))
	}
}

func TestParseLevelNamesUnnamedObjects(t *testing.T) {
	doc := `
objects:
  - shape: box
    position: [0, 0, 0]
    half_extents: [1, 1, 1]
`
	spec, err := ParseLevel([]byte(doc))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if spec.Objects[0].Name != "Object_0" {
		t.Errorf("generated name = %q, want Object_0", spec.Objects[0].Name)
	}
}

func TestParseLevelRejectsBadObjects(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{
			name:    "unknown shape",
			doc:     "objects:\n  - name: X\n    shape: cylinder\n",
			wantSub: "unknown shape",
		},
		{
			name:    "flat box",
			doc:     "objects:\n  - name: X\n    shape: box\n    half_extents: [1, 0, 1]\n",
			wantSub: "half_extents",
		},
		{
			name:    "capsule without radius",
			doc:     "objects:\n  - name: X\n    shape: capsule\n    height: 2\n",
			wantSub: "radius",
		},
		{
			name:    "hull with too few vertices",
			doc:     "objects:\n  - name: X\n    shape: hull\n    vertices: [[0,0,0], [1,0,0], [0,1,0]]\n",
			wantSub: "4 to 8",
		},
		{
			name:    "not yaml",
			doc:     "objects: [}",
			wantSub: "unmarshal",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tc.doc))
			if err == nil {
				t.Fatal("ParseLevel accepted a bad document")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestApplyLevelBuildsScene(t *testing.T) {
	w := New()
	var loaded string
	w.LevelLoaded.AddListener(func(name string) { loaded = name })

	spec, err := ParseLevel([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if err := w.ApplyLevel(spec); err != nil {
		t.Fatalf("ApplyLevel: %v", err)
	}

	if loaded != "test-arena" {
		t.Errorf("LevelLoaded fired with %q, want test-arena", loaded)
	}
	if got := len(w.Scene.GameObjects); got != 5 {
		t.Fatalf("scene object count = %d, want 5 (3 objects + player + camera)", got)
	}
	if got := len(w.Physics.Bodies()); got != 4 {
		t.Errorf("physics body count = %d, want 4 (camera has no collider)", got)
	}

	floor := w.Scene.FindByName("Floor")
	if floor == nil || !floor.HasTag("level") {
		t.Error("floor missing or untagged")
	}

	ramp := w.Scene.FindByName("Ramp")
	if ramp == nil {
		t.Fatal("ramp not spawned")
	}
	rampCol := engine.GetComponent[*components.Collider](ramp)
	if rampCol == nil || rampCol.Shape.Kind != physics.ShapeConvexHull {
		t.Error("ramp did not build a hull collider")
	}
	if sr := engine.GetComponent[*components.ShapeRenderer](ramp); sr == nil || !sr.Wireframe {
		t.Error("ramp renderer is not wireframe")
	}

	player := w.Scene.FindByName("Player")
	if player == nil {
		t.Fatal("player not spawned")
	}
	pb := engine.GetComponent[*components.PhysicsBody](player)
	if pb == nil || !pb.Kinematic {
		t.Error("player body missing or not kinematic")
	}
	move := engine.GetComponent[*components.MovementController](player)
	if move == nil {
		t.Fatal("player has no movement controller")
	}
	if move.MaxSpeed != 5 {
		t.Errorf("player max speed = %v, want 5 from level", move.MaxSpeed)
	}
	if engine.GetComponent[*components.PlayerController](player) == nil {
		t.Error("player has no player controller")
	}

	ferry := w.Scene.FindByName("Ferry")
	if ferry == nil {
		t.Fatal("ferry not spawned")
	}
	mp := engine.GetComponent[*components.MovingPlatform](ferry)
	if mp == nil {
		t.Fatal("ferry has no platform component from the registry")
	}
	if mp.Axis != (mgl32.Vec3{0, 0, 1}) || mp.Distance != 3 || mp.Duration != 2 {
		t.Errorf("platform props = axis %v distance %v duration %v", mp.Axis, mp.Distance, mp.Duration)
	}

	camera := w.Scene.FindByName("MainCamera")
	if camera == nil {
		t.Fatal("camera not spawned")
	}
	fc := engine.GetComponent[*components.FollowCamera](camera)
	if fc == nil {
		t.Fatal("camera has no follow component")
	}
	if fc.Target.Get(w.Scene) != player {
		t.Error("camera target does not resolve to the player")
	}
}

func TestApplyLevelKeepsSceneOnError(t *testing.T) {
	w := New()
	if err := w.LoadLevel([]byte(sampleLevel)); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	floor := w.Scene.FindByName("Floor")

	if err := w.LoadLevel([]byte("objects: [}")); err == nil {
		t.Error("LoadLevel accepted garbage")
	}

	broken := `
name: broken
objects:
  - name: Widget
    shape: box
    position: [0, 0, 0]
    half_extents: [1, 1, 1]
    components:
      - type: conveyor
`
	err := w.LoadLevel([]byte(broken))
	if err == nil {
		t.Fatal("LoadLevel accepted an unknown component")
	}
	if !strings.Contains(err.Error(), "unknown component") {
		t.Errorf("error %q does not mention the unknown component", err)
	}

	if got := len(w.Scene.GameObjects); got != 5 {
		t.Errorf("scene object count after failed reload = %d, want 5", got)
	}
	if w.Scene.FindByName("Floor") != floor {
		t.Error("failed reload replaced the running scene")
	}
}
