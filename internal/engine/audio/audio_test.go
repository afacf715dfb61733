package audio

import (
	"testing"
)

func TestVolumeGain(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -0.01, 0.01}, // Full volume is unity gain
		{0.5, -3, -2},
		{0.0, -200, -9}, // Zero volume must be far below audible
	}

	for _, tt := range tests {
		gain := volumeGain(tt.vol)
		if gain < tt.min || gain > tt.max {
			t.Errorf("volumeGain(%f) = %f, want between %f and %f", tt.vol, gain, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManagerDefaults(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.MasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.MasterVolume())
	}
	if m.IsInitialized() {
		t.Error("manager must not report initialized before Init")
	}
}

func TestUninitializedPlaybackFails(t *testing.T) {
	m := New()
	if err := m.PlayCue(nil); err == nil {
		t.Error("cue playback before Init should fail")
	}
	if err := m.StartAmbience(nil); err == nil {
		t.Error("ambience before Init should fail")
	}
}

func TestSetMasterVolumeClamps(t *testing.T) {
	m := New()
	m.SetMasterVolume(3.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0", m.MasterVolume())
	}
	m.SetMasterVolume(-1.0)
	if m.MasterVolume() != 0.0 {
		t.Errorf("master volume = %f, want 0.0", m.MasterVolume())
	}
}
