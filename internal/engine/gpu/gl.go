package gpu

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/engine/shader"
	"github.com/frostbyte-gg/aurora/internal/logger"
	"github.com/go-gl/gl/v4.6-core/gl"
)

// maxFrameSlots bounds the number of in-flight frame fences.
const maxFrameSlots = 8

// GL implements Backend on an OpenGL 4.6 core context.
// IMPORTANT: must be created AFTER the GL context exists, on the same thread.
type GL struct {
	program       uint32
	vao           uint32
	repeatSampler uint32
	clampSampler  uint32
	uniformAlign  int
	storageAlign  int
	fences        [maxFrameSlots]uintptr
	layout        VertexLayout
	vertexBound   BufferID
	layoutApplied bool
}

// NewGL initializes the GL backend. layout describes the vertex format used
// when binding the vertex buffer for draws.
func NewGL(layout VertexLayout) (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	device := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("device", device),
	)

	b := &GL{layout: layout}

	var uniformAlign, storageAlign int32
	gl.GetIntegerv(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT, &uniformAlign)
	gl.GetIntegerv(gl.SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT, &storageAlign)
	b.uniformAlign = int(uniformAlign)
	b.storageAlign = int(storageAlign)
	logger.Debug("buffer offset alignments",
		zap.Int("uniform", b.uniformAlign),
		zap.Int("storage", b.storageAlign),
	)

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling draw program: %w", err)
	}
	b.program = program

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.02, 0.02, 0.05, 1.0)

	gl.CreateVertexArrays(1, &b.vao)

	gl.CreateSamplers(1, &b.repeatSampler)
	gl.SamplerParameteri(b.repeatSampler, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.SamplerParameteri(b.repeatSampler, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.SamplerParameteri(b.repeatSampler, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.SamplerParameteri(b.repeatSampler, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.CreateSamplers(1, &b.clampSampler)
	gl.SamplerParameteri(b.clampSampler, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.SamplerParameteri(b.clampSampler, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.SamplerParameteri(b.clampSampler, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.SamplerParameteri(b.clampSampler, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	return b, nil
}

// CreateBuffer allocates an immutable device buffer of the given size.
func (b *GL) CreateBuffer(kind BufferKind, sizeBytes int) (BufferID, error) {
	if sizeBytes <= 0 {
		return 0, fmt.Errorf("invalid buffer size %d", sizeBytes)
	}
	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferStorage(id, sizeBytes, nil, gl.DYNAMIC_STORAGE_BIT)
	logger.Debug("buffer created",
		zap.Uint32("id", id),
		zap.Int("kind", int(kind)),
		zap.Int("size", sizeBytes),
	)
	return BufferID(id), nil
}

// BindBufferRegion binds a sub-range of a storage or uniform buffer to a
// descriptor binding point.
func (b *GL) BindBufferRegion(id BufferID, binding uint32, offsetBytes, sizeBytes int) error {
	target := uint32(gl.SHADER_STORAGE_BUFFER)
	if binding == 4 {
		target = gl.UNIFORM_BUFFER
	}
	gl.BindBufferRange(target, binding, uint32(id), offsetBytes, sizeBytes)
	return nil
}

// RegionAlignment returns the device offset alignment for descriptor-bound
// buffer kinds. Vertex and index regions are addressed per element through
// the draw commands, so they carry no byte-offset constraint.
func (b *GL) RegionAlignment(kind BufferKind) int {
	switch kind {
	case BufferUniform:
		if b.uniformAlign > 1 {
			return b.uniformAlign
		}
	case BufferStorage, BufferIndirect:
		if b.storageAlign > 1 {
			return b.storageAlign
		}
	}
	return 1
}

// Upload copies data into a buffer at the given byte offset.
func (b *GL) Upload(id BufferID, offsetBytes int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	gl.NamedBufferSubData(uint32(id), offsetBytes, len(data), gl.Ptr(data))
	return nil
}

// CreateTexture allocates and fills an RGBA8 texture.
func (b *GL) CreateTexture(width, height int, pixels []byte, clamp bool) (TextureID, error) {
	if len(pixels) != width*height*4 {
		return 0, fmt.Errorf("pixel data is %d bytes, want %d", len(pixels), width*height*4)
	}
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	gl.TextureStorage2D(id, 1, gl.RGBA8, int32(width), int32(height))
	gl.TextureSubImage2D(id, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if clamp {
		gl.TextureParameteri(id, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	} else {
		gl.GenerateTextureMipmap(id)
	}
	return TextureID(id), nil
}

// WriteTextureDescriptor binds a texture and its sampler to a texture unit,
// the GL equivalent of writing a descriptor array slot.
func (b *GL) WriteTextureDescriptor(slot uint32, id TextureID, clamp bool) error {
	gl.BindTextureUnit(slot, uint32(id))
	sampler := b.repeatSampler
	if clamp {
		sampler = b.clampSampler
	}
	gl.BindSampler(slot, sampler)
	return nil
}

// WaitFrameSlot blocks until the fence for the slot has signalled, so the
// slot's buffer regions are safe to rewrite.
func (b *GL) WaitFrameSlot(slot int) {
	fence := b.fences[slot%maxFrameSlots]
	if fence == 0 {
		return
	}
	gl.ClientWaitSync(fence, gl.SYNC_FLUSH_COMMANDS_BIT, gl.TIMEOUT_IGNORED)
	gl.DeleteSync(fence)
	b.fences[slot%maxFrameSlots] = 0
}

// SignalFrameSlot inserts a fence after the slot's submitted work.
func (b *GL) SignalFrameSlot(slot int) {
	if old := b.fences[slot%maxFrameSlots]; old != 0 {
		gl.DeleteSync(old)
	}
	b.fences[slot%maxFrameSlots] = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

// SubmitDraws issues drawCount indirect draws.
func (b *GL) SubmitDraws(vertex, index, indirect BufferID, indirectOffset, drawCount int) error {
	if drawCount == 0 {
		return nil
	}
	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	b.bindVertexLayout(vertex)
	gl.VertexArrayElementBuffer(b.vao, uint32(index))
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, uint32(indirect))
	gl.MultiDrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT,
		unsafe.Pointer(uintptr(indirectOffset)), int32(drawCount), 0)
	gl.BindVertexArray(0)
	return nil
}

// bindVertexLayout attaches the vertex buffer and attribute formats to the
// shared VAO. The format setup runs once; rebinding the buffer is cheap.
func (b *GL) bindVertexLayout(vertex BufferID) {
	if !b.layoutApplied {
		for _, a := range b.layout.Attribs {
			gl.EnableVertexArrayAttrib(b.vao, a.Index)
			gl.VertexArrayAttribFormat(b.vao, a.Index, a.Size, gl.FLOAT, false, uint32(a.Offset))
			gl.VertexArrayAttribBinding(b.vao, a.Index, 0)
		}
		b.layoutApplied = true
	}
	if b.vertexBound != vertex {
		gl.VertexArrayVertexBuffer(b.vao, 0, uint32(vertex), 0, int32(b.layout.Stride))
		b.vertexBound = vertex
	}
}

// Close releases device resources owned by the backend.
func (b *GL) Close() {
	for i, fence := range b.fences {
		if fence != 0 {
			gl.DeleteSync(fence)
			b.fences[i] = 0
		}
	}
	if b.repeatSampler != 0 {
		gl.DeleteSamplers(1, &b.repeatSampler)
	}
	if b.clampSampler != 0 {
		gl.DeleteSamplers(1, &b.clampSampler)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
	}
}
