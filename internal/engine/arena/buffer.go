package arena

import (
	"fmt"

	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
)

// CapacityError reports an append past a buffer's provisioned capacity.
// Buffers are sized once at startup, so this is a configuration error;
// retrying the same frame cannot help.
type CapacityError struct {
	Buffer   string
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("arena: %s buffer full (capacity %d)", e.Buffer, e.Capacity)
}

// Buffer is a fixed-capacity linear GPU buffer with a write cursor. Writes
// are append-only within a frame; per-frame buffers rewind the cursor on
// Reset while persistent buffers keep appending for the process lifetime.
//
// Per-frame buffers allocate depth regions on the device and cycle through
// them round-robin by frame slot, so the device can read slot N-1 while the
// CPU fills slot N.
type Buffer[T any] struct {
	name    string
	backend gpu.Backend

	elems    []T
	capacity int
	stride   int
	encode   func(T, []byte)

	// regionStride is the byte distance between device regions, the data
	// size of one region rounded up to the device's offset alignment.
	regionStride int

	id      gpu.BufferID
	binding int // descriptor binding, -1 when bound by the pipeline instead
	depth   int
	slot    int

	// persistent buffers upload on every push and never reset
	persistent bool

	scratch []byte
}

// newBuffer allocates the device storage for a linear buffer. depth is 1 for
// persistent buffers, the configured buffering depth otherwise.
func newBuffer[T any](backend gpu.Backend, name string, kind gpu.BufferKind, binding int, capacity, depth, stride int, encode func(T, []byte)) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: %s buffer capacity must be positive, got %d", name, capacity)
	}
	if depth < 1 {
		depth = 1
	}

	regionStride := capacity * stride
	if depth > 1 {
		// Non-zero region offsets are handed to BindBufferRegion, which
		// requires them aligned to the device's limit for the kind.
		regionStride = alignUp(regionStride, backend.RegionAlignment(kind))
	}

	id, err := backend.CreateBuffer(kind, regionStride*depth)
	if err != nil {
		return nil, fmt.Errorf("arena: allocating %s buffer: %w", name, err)
	}

	b := &Buffer[T]{
		name:         name,
		backend:      backend,
		elems:        make([]T, 0, capacity),
		capacity:     capacity,
		stride:       stride,
		encode:       encode,
		regionStride: regionStride,
		id:           id,
		binding:      binding,
		depth:        depth,
		persistent:   depth == 1,
		scratch:      make([]byte, stride),
	}

	if binding >= 0 {
		if err := backend.BindBufferRegion(id, uint32(binding), 0, capacity*stride); err != nil {
			return nil, fmt.Errorf("arena: binding %s buffer: %w", name, err)
		}
	}
	return b, nil
}

// Push appends one element and returns its slot index.
func (b *Buffer[T]) Push(v T) (int, error) {
	if len(b.elems) >= b.capacity {
		return 0, &CapacityError{Buffer: b.name, Capacity: b.capacity}
	}
	index := len(b.elems)
	b.elems = append(b.elems, v)

	if b.persistent {
		// Persistent data must be visible to every subsequent frame, so
		// it goes to the device immediately.
		b.encode(v, b.scratch)
		if err := b.backend.Upload(b.id, index*b.stride, b.scratch); err != nil {
			return 0, fmt.Errorf("arena: uploading to %s buffer: %w", b.name, err)
		}
	}
	return index, nil
}

// PushSlice appends a run of elements and returns the index of the first.
func (b *Buffer[T]) PushSlice(vs []T) (int, error) {
	if len(b.elems)+len(vs) > b.capacity {
		return 0, &CapacityError{Buffer: b.name, Capacity: b.capacity}
	}
	first := len(b.elems)
	for _, v := range vs {
		if _, err := b.Push(v); err != nil {
			return 0, err
		}
	}
	return first, nil
}

// Reset rewinds the write cursor for a new frame and selects the device
// region for the given frame slot. Previous contents are logically discarded.
func (b *Buffer[T]) Reset(slot int) {
	if b.persistent {
		return
	}
	b.elems = b.elems[:0]
	b.slot = slot % b.depth
}

// Flush encodes the frame's appended elements, uploads them into the active
// device region and rebinds the descriptor to that region.
func (b *Buffer[T]) Flush() error {
	if b.persistent {
		return nil
	}

	offset := b.slot * b.regionStride

	if n := len(b.elems) * b.stride; n > 0 {
		if cap(b.scratch) < n {
			b.scratch = make([]byte, n)
		}
		data := b.scratch[:n]
		for i, v := range b.elems {
			b.encode(v, data[i*b.stride:(i+1)*b.stride])
		}
		if err := b.backend.Upload(b.id, offset, data); err != nil {
			return fmt.Errorf("arena: uploading %s buffer: %w", b.name, err)
		}
	}

	if b.binding >= 0 {
		if err := b.backend.BindBufferRegion(b.id, uint32(b.binding), offset, b.capacity*b.stride); err != nil {
			return fmt.Errorf("arena: binding %s buffer: %w", b.name, err)
		}
	}
	return nil
}

// Len returns the current write cursor.
func (b *Buffer[T]) Len() int {
	return len(b.elems)
}

// Cap returns the provisioned capacity.
func (b *Buffer[T]) Cap() int {
	return b.capacity
}

// At returns the element at the given index for inspection.
func (b *Buffer[T]) At(index int) T {
	return b.elems[index]
}

// ID returns the device buffer id.
func (b *Buffer[T]) ID() gpu.BufferID {
	return b.id
}

// RegionOffset returns the byte offset of the active device region.
func (b *Buffer[T]) RegionOffset() int {
	return b.slot * b.regionStride
}

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	if rem := n % align; rem != 0 {
		return n + align - rem
	}
	return n
}
