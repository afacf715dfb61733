package arena

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

func TestDrawDataEncodeOffsets(t *testing.T) {
	d := DrawData{
		Transform:        math.Translate(1, 2, 3),
		InverseTranspose: math.Identity(),
		BoundingSphere:   math.Vec4{5, 6, 7, 8},
		MaterialID:       42,
		SkinID:           NoSkin,
	}
	b := make([]byte, DrawDataStride)
	encodeDrawData(d, b)

	// Column-major: the translation column starts at element 12.
	if got := f32At(b, 12*4); got != 1 {
		t.Errorf("transform translation x = %v", got)
	}
	if got := f32At(b, 128); got != 5 {
		t.Errorf("bounding sphere x at offset 128 = %v", got)
	}
	if got := binary.LittleEndian.Uint32(b[144:148]); got != 42 {
		t.Errorf("material id at offset 144 = %d", got)
	}
	if got := binary.LittleEndian.Uint32(b[148:152]); got != NoSkin {
		t.Errorf("skin id at offset 148 = %#x", got)
	}
}

func TestIndirectCommandEncode(t *testing.T) {
	c := IndirectCommand{Count: 1, InstanceCount: 2, FirstIndex: 3, BaseVertex: 4, BaseInstance: 5}
	b := make([]byte, IndirectStride)
	encodeIndirect(c, b)

	for i, want := range []uint32{1, 2, 3, 4, 5} {
		if got := binary.LittleEndian.Uint32(b[i*4 : i*4+4]); got != want {
			t.Errorf("field %d = %d, want %d", i, got, want)
		}
	}
}

func TestSceneDataStride(t *testing.T) {
	if SceneDataStride != 432 {
		t.Errorf("scene data stride = %d, want 432", SceneDataStride)
	}

	s := NewSceneData()
	b := make([]byte, SceneDataStride)
	encodeSceneData(s, b)

	// Unused light slots carry the inactive sentinel, not zeroes.
	for i := 0; i < 4; i++ {
		off := 176 + i*64 + 52
		if got := binary.LittleEndian.Uint32(b[off : off+4]); got != 0xFFFFFFFF {
			t.Errorf("light %d type = %#x, want sentinel", i, got)
		}
	}
}

func TestDefaultMaterialEncode(t *testing.T) {
	b := make([]byte, MaterialStride)
	encodeMaterial(DefaultMaterial(), b)

	if got := f32At(b, 0); got != 1 {
		t.Errorf("base color r = %v", got)
	}
	for _, off := range []int{36, 40, 44} {
		if got := binary.LittleEndian.Uint32(b[off : off+4]); got != NoTexture {
			t.Errorf("texture slot at offset %d = %#x, want NoTexture", off, got)
		}
	}
}

func f32At(b []byte, off int) float32 {
	return stdmath.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}
