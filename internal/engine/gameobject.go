package engine

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in degrees
	Scale    mgl32.Vec3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

// uidCounter hands out scene-wide unique ids. 0 is reserved as "no object"
// so GameObjectRef can use it as the empty value.
var uidCounter atomic.Uint64

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    uidCounter.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Scale: mgl32.Vec3{1, 1, 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of the requested type, or the
// type's zero value when the object carries none.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() mgl32.Vec3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := mgl32.Vec3{
		g.Transform.Position[0] * parentScale[0],
		g.Transform.Position[1] * parentScale[1],
		g.Transform.Position[2] * parentScale[2],
	}

	// Rotate by parent rotation, X then Y then Z
	rot := mgl32.Rotate3DZ(mgl32.DegToRad(parentRot[2])).
		Mul3(mgl32.Rotate3DY(mgl32.DegToRad(parentRot[1]))).
		Mul3(mgl32.Rotate3DX(mgl32.DegToRad(parentRot[0])))

	return parentPos.Add(rot.Mul3x1(scaled))
}

func (g *GameObject) WorldRotation() mgl32.Vec3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return g.Parent.WorldRotation().Add(g.Transform.Rotation)
}

func (g *GameObject) WorldScale() mgl32.Vec3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return mgl32.Vec3{
		ps[0] * g.Transform.Scale[0],
		ps[1] * g.Transform.Scale[1],
		ps[2] * g.Transform.Scale[2],
	}
}
