package arena

import (
	"image"
	"testing"

	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
)

func TestTextureIndicesAreMonotonic(t *testing.T) {
	backend := gpu.NewNull()
	table := NewTextureTable(backend)

	for want := uint32(0); want < 3; want++ {
		index, err := table.Allocate(solidImage(2, 2), false)
		if err != nil {
			t.Fatalf("allocate %d failed: %v", want, err)
		}
		if index != want {
			t.Errorf("allocation %d returned index %d", want, index)
		}
	}
	if table.Len() != 3 {
		t.Errorf("len = %d, want 3", table.Len())
	}
}

func TestTextureDescriptorWrittenAtIndex(t *testing.T) {
	backend := gpu.NewNull()
	table := NewTextureTable(backend)

	index, err := table.Allocate(solidImage(2, 2), false)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	id, ok := table.Get(index)
	if !ok {
		t.Fatal("index did not resolve")
	}
	if backend.Descriptors[index].ID != id {
		t.Errorf("descriptor slot %d holds %d, want %d", index, backend.Descriptors[index].ID, id)
	}

	if _, ok := table.Get(99); ok {
		t.Error("out of range index resolved")
	}
}

func TestClampSelectsClampSampler(t *testing.T) {
	backend := gpu.NewNull()
	table := NewTextureTable(backend)

	repeat, err := table.Allocate(solidImage(2, 2), false)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	clamped, err := table.Allocate(solidImage(2, 2), true)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	if backend.Descriptors[repeat].Clamp {
		t.Error("repeat allocation bound the clamp sampler")
	}
	if !backend.Descriptors[clamped].Clamp {
		t.Error("clamp allocation bound the repeat sampler")
	}
}

func TestNormalizeConvertsNonRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 3))
	rgba := normalizeRGBA(src)

	if got := rgba.Bounds(); got.Dx() != 5 || got.Dy() != 3 {
		t.Errorf("bounds = %v", got)
	}
	if len(rgba.Pix) != 5*3*4 {
		t.Errorf("pix length = %d, want %d", len(rgba.Pix), 5*3*4)
	}
}

func TestNormalizeScalesOversizedImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, maxTextureDim*2, maxTextureDim))
	rgba := normalizeRGBA(src)

	if got := rgba.Bounds().Dx(); got > maxTextureDim {
		t.Errorf("width %d exceeds cap", got)
	}
	if got := rgba.Bounds().Dy(); got > maxTextureDim {
		t.Errorf("height %d exceeds cap", got)
	}
}
