package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject

	// uidMap gives FindByUID O(1) lookups; GameObjectRef resolution runs
	// every frame for camera targets, so the linear scan would add up.
	uidMap map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	g.Scene = s
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes an object and all of its children from the scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	children := append([]*GameObject(nil), g.Children...)
	for _, child := range children {
		s.RemoveGameObject(child)
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	g.Scene = nil
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
