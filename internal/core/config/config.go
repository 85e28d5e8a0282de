package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bigsister-app/bigsister/internal/core/journal"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
)

const DefaultServerURL = "http://localhost:5000"

type Config struct {
	ServerURL          string
	TypingInterval     time.Duration
	Theme              string // "" means use the stored preference
	ReflectionTemplate string
}

type tomlConfig struct {
	ServerURL        string `toml:"server_url"`
	TypingIntervalMS int    `toml:"typing_interval_ms"`
	Theme            string `toml:"theme"`
}

// Dir returns the config directory, ~/.config/bigsister.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bigsister"), nil
}

// Load reads config from ~/.config/bigsister/. A missing directory or
// file just means defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerURL:          DefaultServerURL,
		TypingInterval:     typewriter.DefaultInterval,
		ReflectionTemplate: journal.DefaultReflectionTemplate,
	}

	dir, err := Dir()
	if err != nil {
		return cfg, nil
	}

	tomlPath := filepath.Join(dir, "config.toml")
	promptPath := filepath.Join(dir, "reflection_prompt.txt")

	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.ServerURL != "" {
				cfg.ServerURL = tc.ServerURL
			}
			if tc.TypingIntervalMS > 0 {
				cfg.TypingInterval = time.Duration(tc.TypingIntervalMS) * time.Millisecond
			}
			cfg.Theme = tc.Theme
		}
	}

	// If a custom reflection template exists, use it
	if data, err := os.ReadFile(promptPath); err == nil {
		cfg.ReflectionTemplate = string(data)
	}

	return cfg, nil
}
