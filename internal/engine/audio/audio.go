// Package audio provides ambience and cue playback for the runtime.
package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the sample rate the speaker is opened with.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager owns the speaker and mixes an ambience loop with one-shot cues.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Ambience
	ambienceCtrl   *beep.Ctrl
	ambienceVolume *effects.Volume

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	cueVolume    float64

	// Cue mixer for concurrent one-shots
	cueMixer *beep.Mixer
}

// New creates an audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		cueVolume:    1.0,
		cueMixer:     &beep.Mixer{},
	}
}

// Init opens the speaker and starts the cue mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.cueMixer)

	m.initialized = true
	return nil
}

// Close stops all playback and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.ambienceCtrl = nil
	m.ambienceVolume = nil
	m.initialized = false
}

// StartAmbience loops the given WAV data until Close or a later call
// replaces it.
func (m *Manager) StartAmbience(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode ambience: %w", err)
	}

	looped, err := beep.Loop2(streamer)
	if err != nil {
		return fmt.Errorf("loop ambience: %w", err)
	}
	resampled := beep.Resample(4, format.SampleRate, m.sampleRate, looped)

	m.ambienceCtrl = &beep.Ctrl{Streamer: resampled}
	m.ambienceVolume = &effects.Volume{
		Streamer: m.ambienceCtrl,
		Base:     2,
		Volume:   volumeGain(m.masterVolume * 0.5),
		Silent:   m.masterVolume == 0,
	}

	speaker.Clear()
	speaker.Play(m.ambienceVolume, m.cueMixer)
	return nil
}

// PlayCue mixes a one-shot WAV cue over the ambience.
func (m *Manager) PlayCue(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode cue: %w", err)
	}
	resampled := beep.Resample(4, format.SampleRate, m.sampleRate, streamer)

	gain := m.masterVolume * m.cueVolume
	speaker.Lock()
	m.cueMixer.Add(&effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeGain(gain),
		Silent:   gain == 0,
	})
	speaker.Unlock()
	return nil
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.masterVolume = clamp(vol, 0, 1)
	if m.ambienceVolume != nil {
		speaker.Lock()
		m.ambienceVolume.Volume = volumeGain(m.masterVolume * 0.5)
		m.ambienceVolume.Silent = m.masterVolume == 0
		speaker.Unlock()
	}
}

// MasterVolume returns the current master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// IsInitialized reports whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// volumeGain maps a linear 0..1 volume to the exponential gain beep expects.
func volumeGain(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return (vol - 1) * 5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
