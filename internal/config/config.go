// Package config handles engine configuration loading and management.
package config

import "time"

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Arena    ArenaConfig    `yaml:"arena"`
	Session  SessionConfig  `yaml:"session"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ArenaConfig holds GPU buffer capacities. Buffers are sized once at startup;
// a scene that exceeds them is a configuration error, not a runtime condition.
type ArenaConfig struct {
	VertexCapacity   int `yaml:"vertex_capacity"`
	IndexCapacity    int `yaml:"index_capacity"`
	DrawCapacity     int `yaml:"draw_capacity"`
	MaterialCapacity int `yaml:"material_capacity"`
	SkinCapacity     int `yaml:"skin_capacity"`
	BufferingDepth   int `yaml:"buffering_depth"`
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	// IdlePollInterval bounds the sleep while no session is active.
	IdlePollInterval time.Duration `yaml:"idle_poll_interval"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Arena: ArenaConfig{
			VertexCapacity:   1_000_000,
			IndexCapacity:    1_000_000,
			DrawCapacity:     10_000,
			MaterialCapacity: 10_000,
			SkinCapacity:     100,
			BufferingDepth:   2,
		},
		Session: SessionConfig{
			IdlePollInterval: 100 * time.Millisecond,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
