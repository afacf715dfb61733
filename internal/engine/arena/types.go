// Package arena manages the GPU-resident buffers a frame is built from:
// per-frame linear buffers for vertices, indices, draw data and indirect
// commands, persistent material and skin stores, a stable-identity mesh
// arena and a monotonically growing bound texture table.
package arena

import (
	"encoding/binary"
	stdmath "math"

	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
	"github.com/frostbyte-gg/aurora/internal/engine/lighting"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// Descriptor binding points consumed by the shading stage. Reordering these
// breaks rendering silently.
const (
	BindingDrawData  = 0
	BindingMaterials = 1
	BindingIndirect  = 2
	BindingSkins     = 3
	BindingSceneData = 4
)

const (
	// NoMaterial is the reserved material slot holding the default material.
	NoMaterial uint32 = 0
	// NoSkin marks a draw without skinning matrices.
	NoSkin uint32 = 0xFFFFFFFF
	// NoTexture marks an unused texture slot in a material.
	NoTexture uint32 = 0xFFFFFFFF
	// MaxJoints is the number of joint matrices in one skin set.
	MaxJoints = 64
)

// Vertex is one element of the vertex buffer, tightly packed.
// Size: 32 bytes.
type Vertex struct {
	Position math.Vec3 // offset  0
	Normal   math.Vec3 // offset 12
	UV       math.Vec2 // offset 24
}

// VertexStride is the byte size of one Vertex.
const VertexStride = 32

func encodeVertex(v Vertex, b []byte) {
	putVec3(b, 0, v.Position)
	putVec3(b, 12, v.Normal)
	putF32(b, 24, v.UV.X)
	putF32(b, 28, v.UV.Y)
}

// Layout describes the Vertex element layout for pipeline setup.
func Layout() gpu.VertexLayout {
	return gpu.VertexLayout{
		Stride: VertexStride,
		Attribs: []gpu.VertexAttrib{
			{Index: 0, Size: 3, Offset: 0},
			{Index: 1, Size: 3, Offset: 12},
			{Index: 2, Size: 2, Offset: 24},
		},
	}
}

// DrawData describes how to shade one primitive. Its position in the
// draw-data buffer equals the GPU draw-call index, so the write order must
// exactly match the order of emitted indirect commands.
// Size: 160 bytes, 16-byte aligned for storage buffer consumption.
type DrawData struct {
	Transform        math.Mat4 // offset   0: world transform of the parent mesh
	InverseTranspose math.Mat4 // offset  64: for transforming normals
	BoundingSphere   math.Vec4 // offset 128: x, y, z, radius
	MaterialID       uint32    // offset 144: slot in the material buffer
	SkinID           uint32    // offset 148: slot in the skins buffer, or NoSkin
	// 8 bytes trailing padding to a 16-byte multiple
}

// DrawDataStride is the byte size of one DrawData record.
const DrawDataStride = 160

func encodeDrawData(d DrawData, b []byte) {
	putMat4(b, 0, d.Transform)
	putMat4(b, 64, d.InverseTranspose)
	putVec4(b, 128, d.BoundingSphere)
	binary.LittleEndian.PutUint32(b[144:148], d.MaterialID)
	binary.LittleEndian.PutUint32(b[148:152], d.SkinID)
	binary.LittleEndian.PutUint32(b[152:156], 0)
	binary.LittleEndian.PutUint32(b[156:160], 0)
}

// Material is one element of the material buffer, dereferenced by the
// material id in DrawData.
// Size: 48 bytes, 16-byte aligned.
type Material struct {
	BaseColorFactor  math.Vec4 // offset  0
	EmissiveFactor   math.Vec3 // offset 16
	MetallicFactor   float32   // offset 28
	RoughnessFactor  float32   // offset 32
	BaseColorTexture uint32    // offset 36: bound texture index, or NoTexture
	NormalTexture    uint32    // offset 40
	EmissiveTexture  uint32    // offset 44
}

// MaterialStride is the byte size of one Material.
const MaterialStride = 48

func encodeMaterial(m Material, b []byte) {
	putVec4(b, 0, m.BaseColorFactor)
	putVec3(b, 16, m.EmissiveFactor)
	putF32(b, 28, m.MetallicFactor)
	putF32(b, 32, m.RoughnessFactor)
	binary.LittleEndian.PutUint32(b[36:40], m.BaseColorTexture)
	binary.LittleEndian.PutUint32(b[40:44], m.NormalTexture)
	binary.LittleEndian.PutUint32(b[44:48], m.EmissiveTexture)
}

// DefaultMaterial returns the fallback material seeded into slot 0.
func DefaultMaterial() Material {
	return Material{
		BaseColorFactor:  math.Vec4{1, 1, 1, 1},
		RoughnessFactor:  1,
		BaseColorTexture: NoTexture,
		NormalTexture:    NoTexture,
		EmissiveTexture:  NoTexture,
	}
}

// IndirectCommand is one GPU-resident draw descriptor, matching the GL
// DrawElementsIndirectCommand layout.
// Size: 20 bytes, tightly packed per the GL rule.
type IndirectCommand struct {
	Count         uint32 // offset  0: index count
	InstanceCount uint32 // offset  4
	FirstIndex    uint32 // offset  8
	BaseVertex    uint32 // offset 12
	BaseInstance  uint32 // offset 16
}

// IndirectStride is the byte size of one IndirectCommand.
const IndirectStride = 20

func encodeIndirect(c IndirectCommand, b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], c.Count)
	binary.LittleEndian.PutUint32(b[4:8], c.InstanceCount)
	binary.LittleEndian.PutUint32(b[8:12], c.FirstIndex)
	binary.LittleEndian.PutUint32(b[12:16], c.BaseVertex)
	binary.LittleEndian.PutUint32(b[16:20], c.BaseInstance)
}

func encodeIndex(v uint32, b []byte) {
	binary.LittleEndian.PutUint32(b, v)
}

// JointMatrices is one skin set in the skins buffer.
type JointMatrices [MaxJoints]math.Mat4

// SkinStride is the byte size of one JointMatrices set.
const SkinStride = MaxJoints * 64

func encodeSkin(s JointMatrices, b []byte) {
	for i, m := range s {
		putMat4(b, i*64, m)
	}
}

// SceneData is the per-frame uniform block shared by every draw: one
// view-projection and camera position per eye, shared parameters and the
// active light array.
// Size: 432 bytes, 16-byte aligned.
type SceneData struct {
	ViewProjection [2]math.Mat4                       // offset   0
	CameraPosition [2]math.Vec4                       // offset 128
	Params         math.Vec4                          // offset 160: x = time, y = exposure
	Lights         [lighting.MaxLights]lighting.Light // offset 176
}

// SceneDataStride is the byte size of the scene uniform block.
const SceneDataStride = 176 + lighting.MaxLights*lighting.LightStride

// NewSceneData returns a scene block with identity views and every light
// slot explicitly marked inactive.
func NewSceneData() SceneData {
	s := SceneData{
		ViewProjection: [2]math.Mat4{math.Identity(), math.Identity()},
		Params:         math.Vec4{0, 1, 0, 0},
	}
	for i := range s.Lights {
		s.Lights[i] = lighting.None()
	}
	return s
}

func encodeSceneData(s SceneData, b []byte) {
	putMat4(b, 0, s.ViewProjection[0])
	putMat4(b, 64, s.ViewProjection[1])
	putVec4(b, 128, s.CameraPosition[0])
	putVec4(b, 144, s.CameraPosition[1])
	putVec4(b, 160, s.Params)
	for i, l := range s.Lights {
		l.Encode(b[176+i*lighting.LightStride:])
	}
}

func putF32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:off+4], stdmath.Float32bits(v))
}

func putVec3(b []byte, off int, v math.Vec3) {
	putF32(b, off, v.X)
	putF32(b, off+4, v.Y)
	putF32(b, off+8, v.Z)
}

func putVec4(b []byte, off int, v math.Vec4) {
	for i, f := range v {
		putF32(b, off+i*4, f)
	}
}

func putMat4(b []byte, off int, m math.Mat4) {
	for i, f := range m {
		putF32(b, off+i*4, f)
	}
}
