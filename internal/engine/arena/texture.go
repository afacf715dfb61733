package arena

import (
	"fmt"
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"

	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
)

// maxTextureDim caps uploads; larger images are scaled down on the CPU.
const maxTextureDim = 4096

// TextureTable maps logical textures to the small integer indices embedded
// in material records for shader-side lookup. Indices are assigned in
// allocation order starting at 0 and are never reclaimed; an allocation is
// permanent for the process lifetime.
type TextureTable struct {
	backend gpu.Backend
	entries []gpu.TextureID
}

// NewTextureTable creates an empty table.
func NewTextureTable(backend gpu.Backend) *TextureTable {
	return &TextureTable{backend: backend}
}

// Allocate uploads the image, writes its descriptor array slot and returns
// the index to embed in material records. clamp selects clamp-to-edge
// sampling, for textures whose coordinates must not wrap.
func (t *TextureTable) Allocate(img image.Image, clamp bool) (uint32, error) {
	rgba := normalizeRGBA(img)
	bounds := rgba.Bounds()

	id, err := t.backend.CreateTexture(bounds.Dx(), bounds.Dy(), rgba.Pix, clamp)
	if err != nil {
		return 0, fmt.Errorf("arena: creating texture: %w", err)
	}

	index := uint32(len(t.entries))
	if err := t.backend.WriteTextureDescriptor(index, id, clamp); err != nil {
		return 0, fmt.Errorf("arena: writing texture descriptor %d: %w", index, err)
	}
	t.entries = append(t.entries, id)
	return index, nil
}

// Get returns the device texture behind an index.
func (t *TextureTable) Get(index uint32) (gpu.TextureID, bool) {
	if int(index) >= len(t.entries) {
		return 0, false
	}
	return t.entries[index], true
}

// Len returns the number of allocated textures.
func (t *TextureTable) Len() int {
	return len(t.entries)
}

// normalizeRGBA converts any image to tightly packed RGBA, scaling down
// images that exceed the device dimension cap.
func normalizeRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxTextureDim || h > maxTextureDim {
		scale := float64(maxTextureDim) / float64(max(w, h))
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(dst, dst.Bounds(), img, bounds.Min, stddraw.Src)
	return dst
}
