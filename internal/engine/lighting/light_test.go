package lighting

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"github.com/frostbyte-gg/aurora/pkg/math"
)

func TestSpotConeCosines(t *testing.T) {
	// Inner cone angle of zero means falloff begins at the center axis.
	l := NewSpot(math.Vec3{Z: -1}, 10, 100, math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{}, 0, float32(stdmath.Pi/4))

	if diff := stdmath.Abs(float64(l.InnerConeCos - 1)); diff > 1e-6 {
		t.Errorf("inner cone cos for angle 0 should be 1.0, got %v", l.InnerConeCos)
	}
	want := float32(stdmath.Cos(stdmath.Pi / 4))
	if diff := stdmath.Abs(float64(l.OuterConeCos - want)); diff > 1e-6 {
		t.Errorf("outer cone cos: got %v, want %v", l.OuterConeCos, want)
	}
	if l.Type != TypeSpot {
		t.Errorf("expected spot type, got %v", l.Type)
	}
}

func TestNoneSentinel(t *testing.T) {
	l := None()
	if l.Type != TypeNone {
		t.Errorf("none light should carry the reserved sentinel, got %#x", l.Type)
	}
	if l.Type != 0xFFFFFFFF {
		t.Errorf("sentinel must be 0xFFFFFFFF, got %#x", l.Type)
	}

	// All other fields stay zero; the shader never reads them.
	if l.Intensity != 0 || l.Range != 0 || l.InnerConeCos != 0 {
		t.Errorf("none light should be zero apart from its type, got %+v", l)
	}
}

func TestDirectionalDefaults(t *testing.T) {
	l := NewDirectional(math.Vec3{Y: -1}, 2, math.Vec3{X: 1, Y: 1, Z: 1})
	if l.Type != TypeDirectional {
		t.Errorf("expected directional type, got %v", l.Type)
	}
	if l.Range != 0 || l.Position != (math.Vec3{}) {
		t.Errorf("directional light should leave position/range zero, got %+v", l)
	}
}

func TestEncodeLayout(t *testing.T) {
	l := NewSpot(
		math.Vec3{X: 1, Y: 2, Z: 3},
		5, 7,
		math.Vec3{X: 0.25, Y: 0.5, Z: 0.75},
		math.Vec3{X: 9, Y: 10, Z: 11},
		0.1, 0.2,
	)

	var b [LightStride]byte
	l.Encode(b[:])

	f32 := func(off int) float32 {
		return stdmath.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
	}

	// Spot-check the documented offsets.
	if f32(0) != 1 || f32(4) != 2 || f32(8) != 3 {
		t.Error("direction should occupy offsets 0..12")
	}
	if f32(12) != 5 {
		t.Errorf("range at offset 12: got %v", f32(12))
	}
	if f32(28) != 7 {
		t.Errorf("intensity at offset 28: got %v", f32(28))
	}
	if f32(32) != 9 || f32(36) != 10 || f32(40) != 11 {
		t.Error("position should occupy offsets 32..44")
	}
	if got := binary.LittleEndian.Uint32(b[52:56]); got != TypeSpot {
		t.Errorf("light type at offset 52: got %v", got)
	}
	if b[56] != 0 || b[60] != 0 {
		t.Error("trailing padding must be zeroed")
	}
}

func TestEncodeNoneOnlyWritesSentinel(t *testing.T) {
	var b [LightStride]byte
	None().Encode(b[:])

	if got := binary.LittleEndian.Uint32(b[52:56]); got != TypeNone {
		t.Errorf("expected sentinel at offset 52, got %#x", got)
	}
	for off := 0; off < 52; off += 4 {
		if v := binary.LittleEndian.Uint32(b[off : off+4]); v != 0 {
			t.Errorf("field at offset %d should be zero, got %#x", off, v)
		}
	}
}
