package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the engine cannot start with.
func (c *Config) validate() error {
	if c.Arena.VertexCapacity <= 0 || c.Arena.IndexCapacity <= 0 ||
		c.Arena.DrawCapacity <= 0 || c.Arena.MaterialCapacity <= 0 ||
		c.Arena.SkinCapacity <= 0 {
		return fmt.Errorf("arena capacities must be positive: %+v", c.Arena)
	}
	if c.Arena.BufferingDepth < 1 {
		return fmt.Errorf("buffering depth must be at least 1, got %d", c.Arena.BufferingDepth)
	}
	if c.Session.IdlePollInterval <= 0 {
		return fmt.Errorf("idle poll interval must be positive, got %v", c.Session.IdlePollInterval)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./aurora.yaml",
		filepath.Join(ConfigDir(), "aurora.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Aurora")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Aurora")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "aurora")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aurora")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
