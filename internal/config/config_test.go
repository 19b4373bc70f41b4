package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no stray intel.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.CompetitorTTL)
	assert.Equal(t, 12*time.Hour, cfg.Cache.MetricsTTL)
	assert.Equal(t, 20*time.Second, cfg.Fetch.SourceTimeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
cache:
  driver: sqlite
  database_url: intel.db
  metrics_ttl: 6h
fetch:
  source_timeout: 5s
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intel.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "intel.db", cfg.Cache.DatabaseURL)
	assert.Equal(t, 6*time.Hour, cfg.Cache.MetricsTTL)
	// Untouched keys keep defaults.
	assert.Equal(t, 24*time.Hour, cfg.Cache.CompetitorTTL)
	assert.Equal(t, 5*time.Second, cfg.Fetch.SourceTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INTEL_CACHE_DRIVER", "postgres")
	t.Setenv("INTEL_BATCH_CONCURRENCY", "9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Cache.Driver)
	assert.Equal(t, 9, cfg.Batch.Concurrency)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouty", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_OK(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
}

// chdir switches to dir for the test's duration, restoring the previous
// working directory at cleanup (t.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
