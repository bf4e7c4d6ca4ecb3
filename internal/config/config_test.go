package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CalcBoard/internal/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, solver.SchemaResult, cfg.ResponseSchema())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Discover)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api_url = "http://solver.lan:8900"
timeout = "5s"
schema = "solution"
discover = false
window_width = 1024
window_height = 768
`)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvSchema, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://solver.lan:8900", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, solver.SchemaSolution, cfg.ResponseSchema())
	assert.False(t, cfg.Discover)
	assert.Equal(t, float32(1024), cfg.WindowWidth)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `api_url = "http://from-file"`)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvAPIURL, "http://from-env:1234")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSchema, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1234", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestExplicitMissingFileFails(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "nope.toml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestUnknownKeysRejected(t *testing.T) {
	t.Setenv(EnvConfig, writeConfig(t, `api_ulr = "typo"`))
	_, err := Load()
	assert.ErrorContains(t, err, "api_ulr")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Schema = "answer"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.WindowHeight = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DiscoverTimeout = 0
	assert.Error(t, cfg.Validate())
	cfg.Discover = false
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvSchema: "solution"}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "solution", cfg.Schema)
	assert.Empty(t, cfg.APIURL)
}
