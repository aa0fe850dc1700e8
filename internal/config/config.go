package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the translation pipeline.
type Config struct {
	Version string `yaml:"version" json:"version"`

	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Files    FilesConfig    `yaml:"files" json:"files"`
}

type PipelineConfig struct {
	// Run the indentation normalizer before parsing.
	NormalizeIndentation bool `yaml:"normalize_indentation" json:"normalize_indentation"`

	// Generate the tracer/layout/data blueprint.
	GenerateBlueprint bool `yaml:"generate_blueprint" json:"generate_blueprint"`

	// Merge blueprint and algorithm into one script.
	Combine bool `yaml:"combine" json:"combine"`

	// Run structural checks over the combined output.
	Validate bool `yaml:"validate" json:"validate"`
}

type OutputConfig struct {
	// console, json or js
	Format string `yaml:"format" json:"format"`

	Colors  bool `yaml:"colors" json:"colors"`
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Optional file to write the generated script to.
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type FilesConfig struct {
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Max source size in KB.
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Pipeline: PipelineConfig{
			NormalizeIndentation: true,
			GenerateBlueprint:    true,
			Combine:              true,
			Validate:             true,
		},
		Output: OutputConfig{
			Format:  "console",
			Colors:  true,
			Verbose: false,
		},
		Server: ServerConfig{
			Host: env.Str("PYVIZ_HOST", "127.0.0.1"),
			Port: env.Int("PYVIZ_PORT", 8573),
		},
		Files: FilesConfig{
			Include:     []string{"**/*.py"},
			Exclude:     []string{".git/**", "venv/**", "__pycache__/**"},
			MaxFileSize: 512,
		},
	}
}

// LoadConfig loads configuration from file, falling back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func findConfigFile() string {
	possiblePaths := []string{
		".pyviz.yml",
		".pyviz.yaml",
		"pyviz.yml",
		"pyviz.yaml",
		".config/pyviz.yml",
		".config/pyviz.yaml",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	validFormats := []string{"console", "json", "js"}
	formatValid := false
	for _, format := range validFormats {
		if c.Output.Format == format {
			formatValid = true
			break
		}
	}
	if !formatValid {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Files.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be at least 1 KB")
	}
	if c.Pipeline.Combine && !c.Pipeline.GenerateBlueprint {
		return fmt.Errorf("combine requires generate_blueprint")
	}
	return nil
}

// SaveConfig writes the configuration to file.
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateConfig creates a sample configuration file.
func GenerateConfig(configPath string) error {
	return DefaultConfig().SaveConfig(configPath)
}
