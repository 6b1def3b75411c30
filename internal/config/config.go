// Package config loads and validates axion configuration from
// .axion/config.yaml with sensible defaults for every field.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the workspace-relative location of the config file.
const ConfigPath = ".axion/config.yaml"

// Config holds all axion configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Prover configuration
	Prover ProverConfig `yaml:"prover"`

	// Session and persistence
	Session SessionConfig `yaml:"session"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProverConfig bounds the forward-chaining search.
type ProverConfig struct {
	MaxSteps           int      `yaml:"max_steps"`
	InstantiationTerms []string `yaml:"instantiation_terms"`
}

// SessionConfig configures proof history and persistence.
type SessionConfig struct {
	Context      string `yaml:"context"`
	DatabasePath string `yaml:"database_path"`
	TheoryFile   string `yaml:"theory_file"`
}

// LoggingConfig configures category file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Name:    "axion",
		Version: "1.0.0",
		Prover: ProverConfig{
			MaxSteps:           100,
			InstantiationTerms: []string{"0", "1", "x", "a", "n"},
		},
		Session: SessionConfig{
			DatabasePath: ".axion/proofs.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config at path, falling back to defaults when the file does
// not exist. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadWorkspace loads the config from its standard location under the
// workspace root.
func LoadWorkspace(workspace string) (*Config, error) {
	return Load(filepath.Join(workspace, ConfigPath))
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Prover.MaxSteps <= 0 {
		return fmt.Errorf("prover max_steps must be positive, got %d", c.Prover.MaxSteps)
	}
	if len(c.Prover.InstantiationTerms) == 0 {
		return fmt.Errorf("prover instantiation_terms must not be empty")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
