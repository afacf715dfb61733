// Package gpu abstracts the graphics device behind a narrow backend
// interface so the resource arena and frame controller stay testable without
// a live GL context.
package gpu

// BufferKind selects the device usage for a buffer allocation.
type BufferKind int

const (
	// BufferVertex holds vertex data consumed by the vertex fetch stage.
	BufferVertex BufferKind = iota
	// BufferIndex holds 32-bit indices.
	BufferIndex
	// BufferStorage is a shader storage buffer read by draw id.
	BufferStorage
	// BufferIndirect holds indirect draw commands; also readable as storage.
	BufferIndirect
	// BufferUniform is a small uniform block.
	BufferUniform
)

// BufferID identifies a device buffer allocation.
type BufferID uint32

// TextureID identifies a device texture allocation.
type TextureID uint32

// VertexAttrib describes one vertex attribute for pipeline setup.
type VertexAttrib struct {
	Index  uint32
	Size   int32
	Offset int
}

// VertexLayout describes the vertex buffer element layout.
type VertexLayout struct {
	Stride  int
	Attribs []VertexAttrib
}

// Backend is the device interface the arena drives. The GL implementation
// executes asynchronously from the frame-build loop; WaitFrameSlot and
// SignalFrameSlot bracket each in-flight frame so a buffer region is never
// rewritten while the device still reads it.
type Backend interface {
	// CreateBuffer allocates an immutable-size device buffer.
	CreateBuffer(kind BufferKind, sizeBytes int) (BufferID, error)

	// BindBufferRegion binds a sub-range of a storage or uniform buffer to
	// a descriptor binding point. offsetBytes must be a multiple of the
	// kind's RegionAlignment.
	BindBufferRegion(id BufferID, binding uint32, offsetBytes, sizeBytes int) error

	// RegionAlignment returns the device's required byte alignment for
	// bound region offsets of the given buffer kind.
	RegionAlignment(kind BufferKind) int

	// Upload copies data into a buffer at the given byte offset.
	Upload(id BufferID, offsetBytes int, data []byte) error

	// CreateTexture allocates and fills an RGBA8 texture. clamp selects
	// clamp-to-edge sampling instead of repeat.
	CreateTexture(width, height int, pixels []byte, clamp bool) (TextureID, error)

	// WriteTextureDescriptor binds a texture into the descriptor array
	// slot. clamp selects clamp-to-edge sampling instead of repeat.
	WriteTextureDescriptor(slot uint32, id TextureID, clamp bool) error

	// WaitFrameSlot blocks until the device has finished reading the
	// buffer regions of the given frame slot.
	WaitFrameSlot(slot int)

	// SignalFrameSlot marks the end of the device work submitted for the
	// given frame slot.
	SignalFrameSlot(slot int)

	// SubmitDraws issues drawCount indirect draws from the indirect buffer
	// at the given byte offset, sourcing vertices and indices from the
	// given buffers.
	SubmitDraws(vertex, index, indirect BufferID, indirectOffset, drawCount int) error

	// Close releases all device resources.
	Close()
}
