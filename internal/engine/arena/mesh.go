package arena

import (
	"fmt"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

// MeshHandle identifies a mesh in the stable arena. Handles are issued once
// at load time and stay valid for the asset's lifetime; an index is never
// reused for different content while a handle referencing it is live.
type MeshHandle struct {
	Index      uint32
	Generation uint32
}

// MeshData is the per-mesh metadata draw data is generated from.
type MeshData struct {
	Transform        math.Mat4
	InverseTranspose math.Mat4
	BoundingSphere   math.Vec4 // x, y, z, radius
	MaterialID       uint32
	SkinID           uint32 // NoSkin when not skinned

	// Geometry re-appended into the per-frame buffers each rendered frame.
	Vertices []Vertex
	Indices  []uint32
}

type meshSlot struct {
	data       MeshData
	generation uint32
	live       bool
}

// MeshArena is a stable-identity store of mesh metadata. Slots carry a
// generation so a released index can be reused without stale handles ever
// resolving to the new content.
type MeshArena struct {
	slots []meshSlot
	free  []uint32
}

// NewMeshArena creates an empty mesh arena.
func NewMeshArena() *MeshArena {
	return &MeshArena{}
}

// Allocate inserts mesh metadata and returns its handle.
func (a *MeshArena) Allocate(data MeshData) MeshHandle {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[index]
		slot.data = data
		slot.live = true
		return MeshHandle{Index: index, Generation: slot.generation}
	}

	a.slots = append(a.slots, meshSlot{data: data, live: true})
	return MeshHandle{Index: uint32(len(a.slots) - 1)}
}

// Get resolves a handle to its mesh metadata. A handle from a released slot
// does not resolve even if the index has been reallocated.
func (a *MeshArena) Get(h MeshHandle) (*MeshData, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.Index]
	if !slot.live || slot.generation != h.Generation {
		return nil, false
	}
	return &slot.data, true
}

// Release frees a slot for reuse. The slot's generation is bumped so all
// outstanding handles to the old content stop resolving.
func (a *MeshArena) Release(h MeshHandle) error {
	if int(h.Index) >= len(a.slots) {
		return fmt.Errorf("arena: mesh handle %d out of range", h.Index)
	}
	slot := &a.slots[h.Index]
	if !slot.live || slot.generation != h.Generation {
		return fmt.Errorf("arena: stale mesh handle %d/%d", h.Index, h.Generation)
	}
	slot.live = false
	slot.generation++
	slot.data = MeshData{}
	a.free = append(a.free, h.Index)
	return nil
}

// Len returns the number of live meshes.
func (a *MeshArena) Len() int {
	return len(a.slots) - len(a.free)
}
