package engine

import (
	"reflect"
	"testing"
)

type spinBehavior struct {
	BaseComponent
	Speed float32
	Axis  [3]float32
	Loop  bool
	Label string
}

func spinFactory(props map[string]any) Component {
	return &spinBehavior{
		Speed: PropFloat(props, "speed", 1.0),
		Axis:  PropVec3(props, "axis", [3]float32{0, 1, 0}),
		Loop:  PropBool(props, "loop", true),
		Label: PropString(props, "label", ""),
	}
}

func TestRegisterAndCreateComponent(t *testing.T) {
	componentRegistry = map[string]ComponentFactory{}
	RegisterComponent("spin", spinFactory)

	c := CreateComponent("spin", map[string]any{
		"speed": 2.5,
		"axis":  []any{1, 0.0, 0},
		"loop":  false,
		"label": "turntable",
	})

	spin, ok := c.(*spinBehavior)
	if !ok {
		t.Fatalf("CreateComponent returned %T, want *spinBehavior", c)
	}
	if spin.Speed != 2.5 {
		t.Errorf("Speed = %v, want 2.5", spin.Speed)
	}
	if spin.Axis != [3]float32{1, 0, 0} {
		t.Errorf("Axis = %v, want {1 0 0}", spin.Axis)
	}
	if spin.Loop {
		t.Error("Loop should be false")
	}
	if spin.Label != "turntable" {
		t.Errorf("Label = %q, want turntable", spin.Label)
	}
}

func TestCreateComponentDefaults(t *testing.T) {
	componentRegistry = map[string]ComponentFactory{}
	RegisterComponent("spin", spinFactory)

	spin := CreateComponent("spin", map[string]any{}).(*spinBehavior)

	if spin.Speed != 1.0 {
		t.Errorf("Speed default = %v, want 1.0", spin.Speed)
	}
	if spin.Axis != [3]float32{0, 1, 0} {
		t.Errorf("Axis default = %v, want {0 1 0}", spin.Axis)
	}
	if !spin.Loop {
		t.Error("Loop default should be true")
	}
}

func TestCreateComponentUnknown(t *testing.T) {
	componentRegistry = map[string]ComponentFactory{}

	if c := CreateComponent("missing", nil); c != nil {
		t.Errorf("Expected nil for unknown component, got %T", c)
	}
}

func TestRegisterComponentDuplicatePanics(t *testing.T) {
	componentRegistry = map[string]ComponentFactory{}
	RegisterComponent("spin", spinFactory)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	RegisterComponent("spin", spinFactory)
}

func TestRegisteredComponentsSorted(t *testing.T) {
	componentRegistry = map[string]ComponentFactory{}
	RegisterComponent("platform", spinFactory)
	RegisterComponent("collider", spinFactory)
	RegisterComponent("spin", spinFactory)

	got := RegisteredComponents()
	want := []string{"collider", "platform", "spin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RegisteredComponents = %v, want %v", got, want)
	}
}

func TestPropHelpers(t *testing.T) {
	props := map[string]any{
		"whole":   3,
		"decimal": 0.5,
		"text":    "hi",
		"flag":    true,
		"triple":  []any{1, 2, 3},
		"short":   []any{1, 2},
		"mixed":   []any{1, "two", 3},
	}

	if v := PropFloat(props, "whole", -1); v != 3 {
		t.Errorf("PropFloat(whole) = %v, want 3", v)
	}
	if v := PropFloat(props, "decimal", -1); v != 0.5 {
		t.Errorf("PropFloat(decimal) = %v, want 0.5", v)
	}
	if v := PropFloat(props, "absent", -1); v != -1 {
		t.Errorf("PropFloat(absent) = %v, want fallback", v)
	}
	if v := PropFloat(props, "text", -1); v != -1 {
		t.Errorf("PropFloat(text) = %v, want fallback", v)
	}
	if v := PropBool(props, "flag", false); !v {
		t.Error("PropBool(flag) should be true")
	}
	if v := PropString(props, "text", ""); v != "hi" {
		t.Errorf("PropString(text) = %q, want hi", v)
	}
	if v := PropVec3(props, "triple", [3]float32{}); v != [3]float32{1, 2, 3} {
		t.Errorf("PropVec3(triple) = %v, want {1 2 3}", v)
	}
	fallback := [3]float32{9, 9, 9}
	if v := PropVec3(props, "short", fallback); v != fallback {
		t.Errorf("PropVec3(short) = %v, want fallback", v)
	}
	if v := PropVec3(props, "mixed", fallback); v != fallback {
		t.Errorf("PropVec3(mixed) = %v, want fallback", v)
	}
}
