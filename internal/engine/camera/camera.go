// Package camera provides the viewpoint the scene uniform block is built
// from.
package camera

import (
	gomath "math"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Camera is a free-look camera producing one view-projection pair per eye.
// On the desktop host both eyes share the pose, separated horizontally by
// the configured eye distance.
type Camera struct {
	Position math.Vec3

	Yaw   float32 // Horizontal angle (radians), 0 looks down -Z
	Pitch float32 // Vertical angle (radians), clamped short of the poles

	// Projection
	FovY float32 // Vertical field of view (radians)
	Near float32
	Far  float32

	// EyeSeparation is the distance between the two eye positions.
	EyeSeparation float32

	// Sensitivity
	LookSensitivity float32
	MoveSpeed       float32
}

// New creates a camera with default settings.
func New() *Camera {
	return &Camera{
		Position:        math.Vec3{Y: 1.6, Z: 3},
		FovY:            1.0,
		Near:            0.05,
		Far:             1000.0,
		EyeSeparation:   0.063,
		LookSensitivity: 0.003,
		MoveSpeed:       3.0,
	}
}

// Forward returns the camera's view direction.
func (c *Camera) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: -cp * float32(gomath.Sin(float64(c.Yaw))),
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -cp * float32(gomath.Cos(float64(c.Yaw))),
	}
}

// Right returns the camera's right direction on the XZ plane.
func (c *Camera) Right() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Cos(float64(c.Yaw))),
		Z: -float32(gomath.Sin(float64(c.Yaw))),
	}
}

// HandleLook updates orientation from a mouse delta.
func (c *Camera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	// Clamp pitch short of straight up/down
	const limit = 1.55
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
	if c.Pitch > limit {
		c.Pitch = limit
	}
}

// HandleMovement moves the camera in its own frame.
func (c *Camera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Forward().Scale(forward * step)).
		Add(c.Right().Scale(right * step)).
		Add(math.Vec3{Y: up * step})
}

// Orientation returns the camera's rotation as a quaternion: yaw about Y,
// then pitch about the local X axis. It carries -Z onto Forward.
func (c *Camera) Orientation() math.Quat {
	return math.QuatFromEuler(c.Pitch, c.Yaw, 0)
}

// EyePositions returns the left and right eye positions.
func (c *Camera) EyePositions() [2]math.Vec3 {
	offset := c.Right().Scale(c.EyeSeparation / 2)
	return [2]math.Vec3{
		c.Position.Sub(offset),
		c.Position.Add(offset),
	}
}
