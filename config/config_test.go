package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := writeTempConfig(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Server.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.Server.RequestTimeoutDuration() != DefaultRequestTimeout {
		t.Errorf("RequestTimeoutDuration() = %v, want %v", cfg.Server.RequestTimeoutDuration(), DefaultRequestTimeout)
	}
}

func TestLoadConfigOverridesFields(t *testing.T) {
	path := writeTempConfig(t, `
[server]
port = "9090"
uploadDir = "/tmp/uploads"
maxUploadBytes = 1048576
requestTimeout = "5m"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.UploadDir != "/tmp/uploads" {
		t.Errorf("UploadDir = %q, want /tmp/uploads", cfg.Server.UploadDir)
	}
	if cfg.Server.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d, want 1048576", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.RequestTimeoutDuration() != 5*time.Minute {
		t.Errorf("RequestTimeoutDuration() = %v, want 5m", cfg.Server.RequestTimeoutDuration())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
