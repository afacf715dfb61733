package gpu

import "fmt"

// TextureBinding records one descriptor array write.
type TextureBinding struct {
	ID    TextureID
	Clamp bool
}

// Null is a headless Backend that tracks allocations and uploads without a
// device. It backs tests and the --headless mode of the demo binary.
type Null struct {
	nextBuffer  BufferID
	nextTexture TextureID

	// Alignment is the region alignment reported for storage, indirect
	// and uniform buffers. Zero means no constraint.
	Alignment int

	// Buffers maps each allocation to its byte size.
	Buffers map[BufferID]int
	// Uploads counts Upload calls per buffer.
	Uploads map[BufferID]int
	// Descriptors records the texture bound to each descriptor slot.
	Descriptors map[uint32]TextureBinding
	// Draws records the draw counts of each SubmitDraws call.
	Draws []int
	// Waits and Signals record frame slot fencing order.
	Waits   []int
	Signals []int
}

// NewNull creates an empty headless backend.
func NewNull() *Null {
	return &Null{
		Buffers:     make(map[BufferID]int),
		Uploads:     make(map[BufferID]int),
		Descriptors: make(map[uint32]TextureBinding),
	}
}

// CreateBuffer records the allocation and hands out a fresh id.
func (n *Null) CreateBuffer(kind BufferKind, sizeBytes int) (BufferID, error) {
	if sizeBytes <= 0 {
		return 0, fmt.Errorf("invalid buffer size %d", sizeBytes)
	}
	n.nextBuffer++
	n.Buffers[n.nextBuffer] = sizeBytes
	return n.nextBuffer, nil
}

// BindBufferRegion validates the range against the recorded allocation.
func (n *Null) BindBufferRegion(id BufferID, binding uint32, offsetBytes, sizeBytes int) error {
	size, ok := n.Buffers[id]
	if !ok {
		return fmt.Errorf("unknown buffer %d", id)
	}
	if offsetBytes+sizeBytes > size {
		return fmt.Errorf("bind range %d+%d exceeds buffer size %d", offsetBytes, sizeBytes, size)
	}
	if n.Alignment > 1 && offsetBytes%n.Alignment != 0 {
		return fmt.Errorf("bind offset %d not aligned to %d", offsetBytes, n.Alignment)
	}
	return nil
}

// RegionAlignment mirrors the device alignment query.
func (n *Null) RegionAlignment(kind BufferKind) int {
	switch kind {
	case BufferStorage, BufferIndirect, BufferUniform:
		if n.Alignment > 1 {
			return n.Alignment
		}
	}
	return 1
}

// Upload validates the write range and counts the call.
func (n *Null) Upload(id BufferID, offsetBytes int, data []byte) error {
	size, ok := n.Buffers[id]
	if !ok {
		return fmt.Errorf("unknown buffer %d", id)
	}
	if offsetBytes+len(data) > size {
		return fmt.Errorf("upload %d+%d exceeds buffer size %d", offsetBytes, len(data), size)
	}
	n.Uploads[id]++
	return nil
}

// CreateTexture hands out a fresh texture id.
func (n *Null) CreateTexture(width, height int, pixels []byte, clamp bool) (TextureID, error) {
	if len(pixels) != width*height*4 {
		return 0, fmt.Errorf("pixel data is %d bytes, want %d", len(pixels), width*height*4)
	}
	n.nextTexture++
	return n.nextTexture, nil
}

// WriteTextureDescriptor records the slot assignment.
func (n *Null) WriteTextureDescriptor(slot uint32, id TextureID, clamp bool) error {
	n.Descriptors[slot] = TextureBinding{ID: id, Clamp: clamp}
	return nil
}

// WaitFrameSlot records the wait.
func (n *Null) WaitFrameSlot(slot int) {
	n.Waits = append(n.Waits, slot)
}

// SignalFrameSlot records the signal.
func (n *Null) SignalFrameSlot(slot int) {
	n.Signals = append(n.Signals, slot)
}

// SubmitDraws records the draw count.
func (n *Null) SubmitDraws(vertex, index, indirect BufferID, indirectOffset, drawCount int) error {
	n.Draws = append(n.Draws, drawCount)
	return nil
}

// Close is a no-op.
func (n *Null) Close() {}
