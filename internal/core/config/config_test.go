package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/journal"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.TypingInterval != typewriter.DefaultInterval {
		t.Errorf("TypingInterval = %v", cfg.TypingInterval)
	}
	if cfg.ReflectionTemplate != journal.DefaultReflectionTemplate {
		t.Error("ReflectionTemplate should default")
	}
}

func TestLoadOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "bigsister")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	toml := `server_url = "https://bigsister.example.com"
typing_interval_ms = 35
theme = "dark"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reflection_prompt.txt"), []byte("Think about {{title}}."), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://bigsister.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.TypingInterval != 35*time.Millisecond {
		t.Errorf("TypingInterval = %v", cfg.TypingInterval)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.ReflectionTemplate != "Think about {{title}}." {
		t.Errorf("ReflectionTemplate = %q", cfg.ReflectionTemplate)
	}
}
