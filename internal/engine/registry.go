package engine

import (
	"fmt"
	"sort"
)

// ComponentFactory builds a component from the props attached to a level
// file entry.
type ComponentFactory func(props map[string]any) Component

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent registers a named component factory. Level files refer
// to behaviors by these names. Registration happens in init funcs, so a
// duplicate name is a programming error and panics.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent looks up a registered factory by name and invokes it.
// Returns nil for unknown names; the loader reports those as level errors.
func CreateComponent(name string, props map[string]any) Component {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil
	}
	return factory(props)
}

// RegisteredComponents returns the sorted names of all registered factories.
func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropFloat reads a numeric prop. YAML hands integers to factories as int
// and decimals as float64, so both are accepted.
func PropFloat(props map[string]any, key string, fallback float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	}
	return fallback
}

func PropBool(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}

func PropString(props map[string]any, key string, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}

// PropVec3 reads a three-element numeric sequence prop ([x, y, z] in YAML).
func PropVec3(props map[string]any, key string, fallback [3]float32) [3]float32 {
	seq, ok := props[key].([]any)
	if !ok || len(seq) != 3 {
		return fallback
	}
	var out [3]float32
	for i, elem := range seq {
		switch v := elem.(type) {
		case float64:
			out[i] = float32(v)
		case int:
			out[i] = float32(v)
		default:
			return fallback
		}
	}
	return out
}
