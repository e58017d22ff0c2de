package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ".env", cfg.Keyfile)
	assert.Equal(t, 60, cfg.HTTPTimeoutSeconds)
	assert.Equal(t, 500, cfg.ShutdownGraceMS)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTOPAINT_ENV", "development")
	t.Setenv("AUTOPAINT_HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 5, cfg.HTTPTimeoutSeconds)
}

func TestLoadConfig_FileProviders(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	configContent := `
env: development
providers:
  gemini:
    endpoint: "http://localhost:9999"
    requests_per_second: 2
    burst: 4
  openrouter:
    disabled: true
`
	require.NoError(t, os.WriteFile("autopaint.yaml", []byte(configContent), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Providers["gemini"].Endpoint)
	assert.Equal(t, 2.0, cfg.Providers["gemini"].RequestsPerSecond)
	assert.True(t, cfg.Providers["openrouter"].Disabled)
	assert.False(t, cfg.Providers["gemini"].Disabled)
}

func TestLoadConfig_RejectsInvalidEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTOPAINT_ENV", "staging")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// chdir changes the working directory for the test, equivalent to
// t.Chdir (which requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
