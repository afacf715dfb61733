// Package lighting defines the punctual light descriptors uploaded with the
// scene data, following the KHR_lights_punctual model.
package lighting

import (
	"encoding/binary"
	stdmath "math"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Light types as seen by the fragment shader.
const (
	// TypeDirectional is a light infinitely far away.
	TypeDirectional uint32 = 0
	// TypePoint radiates in all directions from a position.
	TypePoint uint32 = 1
	// TypeSpot radiates in a cone from a position.
	TypeSpot uint32 = 2
	// TypeNone marks an inactive light slot; the shader reads no other
	// field of a slot carrying it.
	TypeNone uint32 = 0xFFFFFFFF
)

// MaxLights is the maximum number of simultaneously active lights in a scene.
const MaxLights = 4

// InfiniteRange marks a light with no attenuation cutoff.
const InfiniteRange float32 = -1

// Light is the fixed-layout light descriptor consumed by the shading stage.
// Cone angles are converted to cosines at construction time, never at
// shading time.
// Size: 64 bytes, 16-byte aligned.
type Light struct {
	Direction math.Vec3 // offset  0: direction the light is facing
	Range     float32   // offset 12: attenuation cutoff, InfiniteRange for none

	Color     math.Vec3 // offset 16: linear RGB
	Intensity float32   // offset 28: candela for point/spot, lux for directional

	Position     math.Vec3 // offset 32
	InnerConeCos float32   // offset 44: cosine of the angle where falloff begins

	OuterConeCos float32 // offset 48: cosine of the angle where falloff ends
	Type         uint32  // offset 52: TypeNone marks the slot inactive
	// 8 bytes trailing padding to a 16-byte multiple
}

// LightStride is the byte size of one Light.
const LightStride = 64

// None returns an inactive light slot. Unused slots are explicitly marked
// rather than left uninitialized.
func None() Light {
	return Light{Type: TypeNone}
}

// NewDirectional creates a directional light.
func NewDirectional(direction math.Vec3, intensity float32, color math.Vec3) Light {
	return Light{
		Direction: direction,
		Color:     color,
		Intensity: intensity,
		Type:      TypeDirectional,
	}
}

// NewPoint creates a point light.
func NewPoint(position math.Vec3, rang, intensity float32, color math.Vec3) Light {
	return Light{
		Position:  position,
		Range:     rang,
		Color:     color,
		Intensity: intensity,
		Type:      TypePoint,
	}
}

// NewSpot creates a spotlight. Cone angles are in radians.
func NewSpot(direction math.Vec3, rang, intensity float32, color math.Vec3, position math.Vec3, innerConeAngle, outerConeAngle float32) Light {
	return Light{
		Direction:    direction,
		Range:        rang,
		Color:        color,
		Intensity:    intensity,
		Position:     position,
		InnerConeCos: float32(stdmath.Cos(float64(innerConeAngle))),
		OuterConeCos: float32(stdmath.Cos(float64(outerConeAngle))),
		Type:         TypeSpot,
	}
}

// Encode writes the light's GPU layout into b, which must hold at least
// LightStride bytes.
func (l Light) Encode(b []byte) {
	putF32(b, 0, l.Direction.X)
	putF32(b, 4, l.Direction.Y)
	putF32(b, 8, l.Direction.Z)
	putF32(b, 12, l.Range)
	putF32(b, 16, l.Color.X)
	putF32(b, 20, l.Color.Y)
	putF32(b, 24, l.Color.Z)
	putF32(b, 28, l.Intensity)
	putF32(b, 32, l.Position.X)
	putF32(b, 36, l.Position.Y)
	putF32(b, 40, l.Position.Z)
	putF32(b, 44, l.InnerConeCos)
	putF32(b, 48, l.OuterConeCos)
	binary.LittleEndian.PutUint32(b[52:56], l.Type)
	binary.LittleEndian.PutUint32(b[56:60], 0)
	binary.LittleEndian.PutUint32(b[60:64], 0)
}

func putF32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:off+4], stdmath.Float32bits(v))
}
