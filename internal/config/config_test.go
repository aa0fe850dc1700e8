package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "console" {
		t.Errorf("default format = %q, want console", cfg.Output.Format)
	}
	if !cfg.Pipeline.NormalizeIndentation || !cfg.Pipeline.GenerateBlueprint ||
		!cfg.Pipeline.Combine || !cfg.Pipeline.Validate {
		t.Errorf("default pipeline stages not all enabled: %+v", cfg.Pipeline)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		t.Errorf("default port %d out of range", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad file size", func(c *Config) { c.Files.MaxFileSize = 0 }},
		{"combine without blueprint", func(c *Config) {
			c.Pipeline.GenerateBlueprint = false
			c.Pipeline.Combine = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() succeeded, want error")
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyviz.yml")
	data := []byte("output:\n  format: js\n  colors: false\nserver:\n  port: 9000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.Format != "js" {
		t.Errorf("format = %q, want js", cfg.Output.Format)
	}
	if cfg.Output.Colors {
		t.Error("colors not overridden to false")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	// Unset fields keep their defaults.
	if !cfg.Pipeline.Combine {
		t.Error("pipeline defaults lost on partial config")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyviz.yml")
	if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted an invalid format")
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "pyviz.yml")

	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("reloaded format = %q, want json", loaded.Output.Format)
	}
}
