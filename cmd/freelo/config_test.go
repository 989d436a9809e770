package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metalagman/freelo/internal/config"
)

func TestResolveConfigPath(t *testing.T) {
	repoRoot := t.TempDir()

	got := resolveConfigPath(repoRoot, "")
	want := filepath.Join(repoRoot, config.DefaultPath)
	if got != want {
		t.Fatalf("resolve config path = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "custom.yaml")
	if got := resolveConfigPath(repoRoot, abs); got != abs {
		t.Fatalf("resolve absolute path = %q, want %q", got, abs)
	}
}

func TestDefaultConfigYAML_IsLoadable(t *testing.T) {
	repoRoot := t.TempDir()
	data, err := defaultConfigYAML()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if err := writeTestFile(filepath.Join(repoRoot, config.DefaultPath), string(data)); err != nil {
		t.Fatalf("write default config: %v", err)
	}
	cfgFile = config.DefaultPath
	t.Cleanup(func() { cfgFile = config.DefaultPath })

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Model.Timeout != 30*time.Second {
		t.Fatalf("model.timeout = %s, want 30s", cfg.Model.Timeout)
	}
	if cfg.Database.Path != filepath.Join(repoRoot, ".freelo", "freelo.db") {
		t.Fatalf("database.path = %q", cfg.Database.Path)
	}
}

func TestLoadConfig_OwnerFlagOverrides(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, config.DefaultPath), `owner: ana
model:
  provider: openai
  timeout: 5s
`); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}
	cfgFile = config.DefaultPath
	ownerFlag = "bob"
	t.Cleanup(func() {
		cfgFile = config.DefaultPath
		ownerFlag = ""
	})

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Owner != "bob" {
		t.Fatalf("owner = %q, want %q", cfg.Owner, "bob")
	}
	if cfg.Model.Name != "gpt-4o-mini" {
		t.Fatalf("model.name = %q, want provider default", cfg.Model.Name)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfgFile = config.DefaultPath
	if _, err := loadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func writeTestFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
