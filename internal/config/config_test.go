package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/ramble/internal/config"
	"github.com/amonks/ramble/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Server.URL != "" {
		t.Error("expected empty server URL")
	}

	if cfg.Server.TimeoutSeconds != 0 {
		t.Error("expected zero timeout")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[server]
url = "http://explorer.example.com:8000/"
timeout-seconds = 30

[render]
style = "dark"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "ramble.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.URL != "http://explorer.example.com:8000/" {
		t.Errorf("unexpected server URL %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("unexpected timeout %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.Render.Style != "dark" {
		t.Errorf("unexpected style %q", cfg.Render.Style)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[server]
url = "http://global.example.com"
timeout-seconds = 10

[render]
style = "light"
`
	globalPath := filepath.Join(homeDir, ".config", "ramble", "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
[server]
url = "http://project.example.com"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "ramble.toml"), []byte(projectContent), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.URL != "http://project.example.com" {
		t.Errorf("expected project URL to win, got %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds != 10 {
		t.Errorf("expected global timeout to survive, got %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.Render.Style != "light" {
		t.Errorf("expected global style to survive, got %q", cfg.Render.Style)
	}
}

func TestLoad_ProjectExplicitZeroTimeout(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[server]
timeout-seconds = 10
`
	globalPath := filepath.Join(homeDir, ".config", "ramble", "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
[server]
timeout-seconds = 0
`
	if err := os.WriteFile(filepath.Join(tmpDir, "ramble.toml"), []byte(projectContent), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.TimeoutSeconds != 0 {
		t.Errorf("expected explicit zero to override global, got %d", cfg.Server.TimeoutSeconds)
	}
}
