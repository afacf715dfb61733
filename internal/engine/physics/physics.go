// Package physics holds the minimal rigid-body simulation whose poses are
// the authoritative source for renderable transforms.
package physics

import (
	"fmt"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

// BodyHandle identifies a rigid body in the world.
type BodyHandle uint32

// Body is one simulated rigid body. Position and Rotation are the
// authoritative pose; velocities are integrated each step.
type Body struct {
	Position        math.Vec3
	Rotation        math.Quat
	LinearVelocity  math.Vec3
	AngularVelocity math.Vec3 // axis scaled by radians per second
}

// World owns the simulated bodies and advances them in fixed steps.
type World struct {
	bodies []Body
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// AddBody inserts a body and returns its handle.
func (w *World) AddBody(b Body) BodyHandle {
	if b.Rotation == (math.Quat{}) {
		b.Rotation = math.QuatIdentity()
	}
	w.bodies = append(w.bodies, b)
	return BodyHandle(len(w.bodies) - 1)
}

// Body returns the current state of a body.
func (w *World) Body(h BodyHandle) (*Body, error) {
	if int(h) >= len(w.bodies) {
		return nil, fmt.Errorf("physics: unknown body %d", h)
	}
	return &w.bodies[int(h)], nil
}

// Step advances every body by dt seconds. Rotations drift off unit length
// through repeated integration; consumers re-normalize on read.
func (w *World) Step(dt float32) {
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Position = b.Position.Add(b.LinearVelocity.Scale(dt))

		axis := b.AngularVelocity
		if angle := axis.Length() * dt; angle > 0 {
			spin := math.QuatFromAxisAngle(axis.Normalize(), angle)
			b.Rotation = spin.Mul(b.Rotation)
		}
	}
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}
