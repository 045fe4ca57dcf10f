package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WIDGET_BASE_URL", "WIDGET_API_TOKEN", "WIDGET_PARAM_PREFIX",
		"WIDGET_TIMEOUT_SECONDS", "WIDGET_LOG_FILE", "WIDGET_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	// keep a stray .env in the package dir from leaking in
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.APIToken)
	assert.Empty(t, cfg.ParamPrefix)
	assert.False(t, cfg.BaseURLFromEnv)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://support.example.com
param_prefix: /chat-widget
timeout_seconds: 5
log_level: debug
`), 0o600))
	t.Setenv("WIDGET_LOG_LEVEL", "warn")
	t.Setenv("WIDGET_API_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://support.example.com", cfg.BaseURL)
	assert.False(t, cfg.BaseURLFromEnv)
	assert.Equal(t, "/chat-widget", cfg.ParamPrefix)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("WIDGET_BASE_URL"))
	require.NoError(t, os.WriteFile(".env", []byte("WIDGET_BASE_URL=http://dotenv:8080\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:8080", cfg.BaseURL)
	assert.True(t, cfg.BaseURLFromEnv)
	require.NoError(t, os.Unsetenv("WIDGET_BASE_URL"))
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: read")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timeout_seconds: [1"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: parse")
}

func TestTimeout_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIDGET_TIMEOUT_SECONDS", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	cfg.TimeoutSeconds = -1
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}
