package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Pipeline.SyntheticSeed)
	assert.Equal(t, 2.0, cfg.Pipeline.RowTolerance)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log output", func(c *Config) { c.Logging.Output = "syslog" }},
		{"zero row tolerance", func(c *Config) { c.Pipeline.RowTolerance = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit.RPS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("SPORTSIGHT_SERVER_PORT", "9191")
	t.Setenv("SPORTSIGHT_PIPELINE_SYNTHETIC_SEED", "7")
	t.Setenv("SPORTSIGHT_LOGGING_OUTPUT", "stdout")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, int64(7), cfg.Pipeline.SyntheticSeed)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	// Untouched values keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestResolvePathsUsesConfiguredBase(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.BaseDir = base

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "documents"), paths.DocumentsDir)
}

func TestPathsLayout(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base)

	assert.Equal(t, filepath.Join(base, "data", "raw"), paths.RawDir)
	assert.Equal(t, filepath.Join(base, "data", "processed"), paths.ProcessedDir)
	assert.Equal(t, filepath.Join(paths.RawDir, "extracted_raw.csv"), paths.GetRawPath("extracted_raw.csv"))
	assert.Equal(t, filepath.Join(paths.ProcessedDir, "kpi.csv"), paths.GetProcessedPath("kpi.csv"))

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.DocumentsDir)
	assert.DirExists(t, paths.RawDir)
	assert.DirExists(t, paths.ProcessedDir)
	assert.DirExists(t, paths.LogsDir)
}
