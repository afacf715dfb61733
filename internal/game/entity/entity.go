// Package entity defines the renderable objects the scene is built from.
package entity

import (
	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Transform is an entity's renderable pose.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix composes the transform into a world matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Translation, t.Rotation, t.Scale)
}

// Entity is one object in the scene. Mesh and Body are optional; an entity
// with both gets its transform driven by the simulation each tick.
type Entity struct {
	Name      string
	Transform Transform

	Mesh    arena.MeshHandle
	HasMesh bool

	Body    physics.BodyHandle
	HasBody bool
}

// New creates a named entity with an identity transform.
func New(name string) *Entity {
	return &Entity{Name: name, Transform: NewTransform()}
}

// WithMesh attaches a mesh handle.
func (e *Entity) WithMesh(h arena.MeshHandle) *Entity {
	e.Mesh = h
	e.HasMesh = true
	return e
}

// WithBody attaches a simulation body.
func (e *Entity) WithBody(h physics.BodyHandle) *Entity {
	e.Body = h
	e.HasBody = true
	return e
}
