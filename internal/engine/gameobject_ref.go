package engine

// GameObjectRef points at another object by UID, so it survives a scene file
// round trip. The zero value refers to nothing.
type GameObjectRef struct {
	UID uint64
}

// RefTo returns a reference to g, or the empty reference for nil.
func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

// RefFromProp reads a reference from a scene file prop. Both formats decode
// numbers as float64.
func RefFromProp(props map[string]any, key string) GameObjectRef {
	v, ok := props[key].(float64)
	if !ok || v < 1 {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: uint64(v)}
}

// Prop is the scene file form of the reference.
func (r GameObjectRef) Prop() float64 {
	return float64(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Refers reports whether r points at g. An empty reference refers to nothing,
// not even a nil object.
func (r GameObjectRef) Refers(g *GameObject) bool {
	return r.UID != 0 && g != nil && g.UID == r.UID
}

// Get resolves the reference in scene. Objects removed from the scene no
// longer resolve.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}
