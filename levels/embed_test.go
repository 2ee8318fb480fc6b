package levels_test

import (
	"testing"

	"platform3d/internal/world"
	"platform3d/levels"
)

// The embedded default must always parse: a schema change that breaks it
// breaks the shipped binary.
func TestEmbeddedSandboxParses(t *testing.T) {
	data, err := levels.Load(levels.DefaultLevel)
	if err != nil {
		t.Fatalf("load embedded level: %v", err)
	}

	spec, err := world.ParseLevel(data)
	if err != nil {
		t.Fatalf("parse embedded level: %v", err)
	}
	if spec.Name != "sandbox" {
		t.Errorf("level name = %q, want sandbox", spec.Name)
	}
	if len(spec.Objects) == 0 {
		t.Fatal("embedded level has no objects")
	}

	shapes := map[string]bool{}
	for _, obj := range spec.Objects {
		shapes[obj.Shape] = true
	}
	for _, want := range []string{"box", "capsule", "hull"} {
		if !shapes[want] {
			t.Errorf("embedded level has no %s object", want)
		}
	}
}

func TestLoadUnknownLevel(t *testing.T) {
	if _, err := levels.Load("missing.yaml"); err == nil {
		t.Fatal("expected error for a level that does not exist")
	}
}

func TestLoadAcceptsPrefixedPath(t *testing.T) {
	direct, err := levels.Load(levels.DefaultLevel)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prefixed, err := levels.Load("levels/" + levels.DefaultLevel)
	if err != nil {
		t.Fatalf("load with prefix: %v", err)
	}
	if string(direct) != string(prefixed) {
		t.Error("prefixed path returned different content")
	}
}
