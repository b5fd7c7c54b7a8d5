// ABOUTME: Tests for vitals configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/vitals/internal/engine"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "charm"}
	if got := cfg.GetBackend(); got != "charm" {
		t.Errorf("GetBackend() = %q, want %q", got, "charm")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/vitals-test"}
	if got := cfg.GetDataDir(); got != "/tmp/vitals-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/vitals-test")
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want %q", got, "")
	}
}

func TestExpandPathAbsolute(t *testing.T) {
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q, want %q", got, "/tmp/foo")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~")
	if got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
}

func TestExpandPathTildeSlash(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~/data/vitals")
	want := filepath.Join(home, "data/vitals")
	if got != want {
		t.Errorf("ExpandPath(\"~/data/vitals\") = %q, want %q", got, want)
	}
}

func TestExpandPathRelative(t *testing.T) {
	if got := ExpandPath("data/vitals"); got != "data/vitals" {
		t.Errorf("ExpandPath(\"data/vitals\") = %q, want %q", got, "data/vitals")
	}
}

func TestThresholdsDefault(t *testing.T) {
	cfg := &Config{}
	th := cfg.Thresholds()
	want := engine.DefaultThresholds()
	if th != want {
		t.Errorf("Thresholds() = %+v, want defaults %+v", th, want)
	}
}

func TestThresholdsConfigured(t *testing.T) {
	cfg := &Config{WarningZ: 1.5, CriticalZ: 2.5}
	th := cfg.Thresholds()
	if th.Warning != 1.5 || th.Critical != 2.5 {
		t.Errorf("Thresholds() = %+v, want 1.5/2.5", th)
	}
}

func TestThresholdsInvertedFallsBack(t *testing.T) {
	// Warning above critical is nonsense; defaults apply.
	cfg := &Config{WarningZ: 4, CriticalZ: 2}
	th := cfg.Thresholds()
	if th != engine.DefaultThresholds() {
		t.Errorf("Thresholds() = %+v, want defaults for inverted config", th)
	}
}

// clearVitalsEnv unsets the override variables for the duration of a test.
// t.Setenv registers the restore; Unsetenv removes the value itself.
func clearVitalsEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VITALS_BACKEND", "VITALS_DATA_DIR", "VITALS_WARNING_Z", "VITALS_CRITICAL_Z"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	clearVitalsEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Backend != "" {
		t.Errorf("Expected empty Backend, got %q", cfg.Backend)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	clearVitalsEnv(t)

	cfg := &Config{
		Backend:   "charm",
		DataDir:   "/tmp/vitals-data",
		CriticalZ: 2.5,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.Backend != "charm" {
		t.Errorf("Backend mismatch: got %q, want %q", loaded.Backend, "charm")
	}
	if loaded.DataDir != "/tmp/vitals-data" {
		t.Errorf("DataDir mismatch: got %q, want %q", loaded.DataDir, "/tmp/vitals-data")
	}
	if loaded.CriticalZ != 2.5 {
		t.Errorf("CriticalZ mismatch: got %v, want 2.5", loaded.CriticalZ)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Backend: "sqlite", DataDir: "/tmp/from-file"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	t.Setenv("VITALS_BACKEND", "charm")
	t.Setenv("VITALS_DATA_DIR", "/tmp/from-env")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Backend != "charm" {
		t.Errorf("Backend = %q, want env override charm", loaded.Backend)
	}
	if loaded.DataDir != "/tmp/from-env" {
		t.Errorf("DataDir = %q, want env override /tmp/from-env", loaded.DataDir)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "vitals")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "vitals")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "vitals", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{
		Backend: "sqlite",
		DataDir: tmpDir,
	}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer repo.Close()

	dbPath := filepath.Join(tmpDir, "vitals.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected vitals.db to be created")
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{
		Backend: "invalid",
		DataDir: "/tmp",
	}

	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	cfg := &Config{}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}

func TestOpenStorageDefaultBackend(t *testing.T) {
	cfg := &Config{
		DataDir: t.TempDir(),
	}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() with default backend failed: %v", err)
	}
	defer repo.Close()
}
