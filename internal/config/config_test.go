package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "axion", cfg.Name)
	assert.Equal(t, 100, cfg.Prover.MaxSteps)
	assert.Equal(t, []string{"0", "1", "x", "a", "n"}, cfg.Prover.InstantiationTerms)
	assert.Equal(t, ".axion/proofs.db", cfg.Session.DatabasePath)
	require.NoError(t, cfg.Validate())
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
prover:
  max_steps: 250
logging:
  debug_mode: true
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Prover.MaxSteps)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, []string{"0", "1", "x", "a", "n"}, cfg.Prover.InstantiationTerms)
	assert.Equal(t, "axion", cfg.Name)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prover: [not a map"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".axion", "config.yaml")

	cfg := DefaultConfig()
	cfg.Prover.MaxSteps = 42
	cfg.Session.Context = "analysis session"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadWorkspace(dir)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Prover.MaxSteps)
	assert.Equal(t, "analysis session", loaded.Session.Context)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero max steps", func(c *Config) { c.Prover.MaxSteps = 0 }, true},
		{"empty vocabulary", func(c *Config) { c.Prover.InstantiationTerms = nil }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
