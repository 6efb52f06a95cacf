package engine

import (
	"fmt"
	"sort"
)

// Serializable components can be created by type name from scene files and
// written back out.
type Serializable interface {
	Component
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any) error
}

type ComponentFactory func() Serializable

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent registers a built-in component type. Registering a name
// twice panics.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent returns a fresh component of the named type.
func CreateComponent(name string) (Serializable, bool) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
