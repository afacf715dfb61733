package arena

import "testing"

func TestMeshArenaAllocateAndGet(t *testing.T) {
	a := NewMeshArena()

	h := a.Allocate(MeshData{MaterialID: 3, SkinID: NoSkin})
	if h.Index != 0 || h.Generation != 0 {
		t.Fatalf("first handle = %+v", h)
	}

	data, ok := a.Get(h)
	if !ok {
		t.Fatal("handle did not resolve")
	}
	if data.MaterialID != 3 {
		t.Errorf("material id = %d", data.MaterialID)
	}
}

func TestStaleHandleDoesNotResolve(t *testing.T) {
	a := NewMeshArena()

	old := a.Allocate(MeshData{MaterialID: 1})
	if err := a.Release(old); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	// The freed index is reused with a bumped generation.
	fresh := a.Allocate(MeshData{MaterialID: 2})
	if fresh.Index != old.Index {
		t.Fatalf("expected index reuse, got %d and %d", old.Index, fresh.Index)
	}
	if fresh.Generation == old.Generation {
		t.Fatal("reused slot must carry a new generation")
	}

	if _, ok := a.Get(old); ok {
		t.Error("stale handle resolved to reallocated slot")
	}
	data, ok := a.Get(fresh)
	if !ok {
		t.Fatal("fresh handle did not resolve")
	}
	if data.MaterialID != 2 {
		t.Errorf("fresh handle resolved to old content, material id = %d", data.MaterialID)
	}
}

func TestDoubleReleaseFails(t *testing.T) {
	a := NewMeshArena()

	h := a.Allocate(MeshData{})
	if err := a.Release(h); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := a.Release(h); err == nil {
		t.Error("double release should fail")
	}
	if err := a.Release(MeshHandle{Index: 99}); err == nil {
		t.Error("out of range release should fail")
	}
}

func TestMeshArenaLen(t *testing.T) {
	a := NewMeshArena()

	h1 := a.Allocate(MeshData{})
	a.Allocate(MeshData{})
	if a.Len() != 2 {
		t.Errorf("len = %d, want 2", a.Len())
	}
	if err := a.Release(h1); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if a.Len() != 1 {
		t.Errorf("len after release = %d, want 1", a.Len())
	}
}
