// ABOUTME: Vitals configuration management with backend selection.
// ABOUTME: Merges the config file with VITALS_* environment overrides.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/vitals/internal/charm"
	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/storage"
)

// Config stores vitals tool configuration. Environment variables override
// values read from the config file.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	// SQLite is local-only; charm syncs through Charm Cloud.
	Backend string `json:"backend,omitempty" env:"VITALS_BACKEND"`

	// DataDir is the root directory for data storage. SQLite puts vitals.db
	// here. Supports ~ expansion. Defaults to ~/.local/share/vitals.
	DataDir string `json:"data_dir,omitempty" env:"VITALS_DATA_DIR"`

	// WarningZ and CriticalZ are the anomaly deviation thresholds in
	// standard deviations. Zero means use the defaults (2 and 3).
	WarningZ  float64 `json:"warning_z,omitempty" env:"VITALS_WARNING_Z"`
	CriticalZ float64 `json:"critical_z,omitempty" env:"VITALS_CRITICAL_Z"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Thresholds returns the anomaly thresholds, falling back to the defaults
// for unset or nonsensical values. Warning must not exceed critical.
func (c *Config) Thresholds() engine.Thresholds {
	th := engine.DefaultThresholds()
	if c.WarningZ > 0 {
		th.Warning = c.WarningZ
	}
	if c.CriticalZ > 0 {
		th.Critical = c.CriticalZ
	}
	if th.Warning > th.Critical {
		return engine.DefaultThresholds()
	}
	return th
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "vitals.db")
		return storage.Open(dbPath)
	case "charm":
		return charm.GetClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vitals", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
