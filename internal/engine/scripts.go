package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a Component from scene file props.
type ScriptFactory func(props map[string]any) Component

// ScriptSerializer converts a Component back to props for saving.
type ScriptSerializer func(c Component) map[string]any

// ScriptApplier applies a single property value to a script component.
// Returns true if the property was applied successfully.
type ScriptApplier func(c Component, propName string, value any) bool

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
	applier    ScriptApplier
	fieldTypes map[string]string
}

var scriptRegistry = map[string]scriptEntry{}

func register(name string, entry scriptEntry) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = entry
}

// RegisterScript registers a named script with a factory and optional serializer.
func RegisterScript(name string, factory ScriptFactory, serializer ScriptSerializer) {
	register(name, scriptEntry{factory: factory, serializer: serializer})
}

// RegisterScriptWithApplier also registers a property applier, used for
// live edits from the inspector and the config watcher.
func RegisterScriptWithApplier(name string, factory ScriptFactory, serializer ScriptSerializer, applier ScriptApplier) {
	register(name, scriptEntry{factory: factory, serializer: serializer, applier: applier})
}

// RegisterScriptWithMetadata additionally records field types, e.g.
// "GameObjectRef" for props holding a UID.
func RegisterScriptWithMetadata(name string, factory ScriptFactory, serializer ScriptSerializer, applier ScriptApplier, fieldTypes map[string]string) {
	register(name, scriptEntry{factory: factory, serializer: serializer, applier: applier, fieldTypes: fieldTypes})
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) Component {
	entry, ok := scriptRegistry[name]
	if !ok {
		return nil
	}
	return entry.factory(props)
}

// SerializeScript tries to serialize a component by checking all registered scripts.
// Returns (name, props, true) if found, ("", nil, false) otherwise.
func SerializeScript(c Component) (string, map[string]any, bool) {
	for name, entry := range scriptRegistry {
		if entry.serializer == nil {
			continue
		}
		if props := entry.serializer(c); props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// GetRegisteredScripts returns a sorted list of all registered script names.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyScriptProperty applies a property value to a script component.
func ApplyScriptProperty(c Component, propName string, value any) bool {
	for _, entry := range scriptRegistry {
		if entry.applier == nil {
			continue
		}
		if entry.applier(c, propName, value) {
			return true
		}
	}
	return false
}

// GetScriptFieldType returns the registered type of a script prop, or "".
func GetScriptFieldType(c Component, field string) string {
	for _, entry := range scriptRegistry {
		if entry.serializer == nil || entry.serializer(c) == nil {
			continue
		}
		return entry.fieldTypes[field]
	}
	return ""
}
