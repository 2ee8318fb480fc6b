package engine

// GameObjectRef is a reference to a GameObject by UID. Components hold one
// instead of a pointer when the target may be removed out from under them,
// or when the target is wired up after level load (the camera follows the
// player this way).
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference. Returns nil if the reference is empty or the
// object is no longer in the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference points at something. It does not
// check that the object still exists; Get does that.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g. Pass nil to clear it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
