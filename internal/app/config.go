package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigFile = "config.json"

// Config holds the persisted workspace settings.
type Config struct {
	WorkspaceDir string  `json:"workspaceDir"`
	TaxonomyFile string  `json:"taxonomyFile"`
	WindowWidth  float32 `json:"windowWidth"`
	WindowHeight float32 `json:"windowHeight"`
}

// ApplyDefaults fills any unset field with its default value.
func (c *Config) ApplyDefaults() {
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = "workspace"
	}
	if c.TaxonomyFile == "" {
		c.TaxonomyFile = filepath.Join("config", "taxonomy.yaml")
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = 1180
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 760
	}
}

// LoadConfig loads configuration from the given path or the default config.json.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
