package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Store.RefreshInterval.Std())
	assert.Equal(t, 5, cfg.Channel.ReconnectAttempts)
}

func TestLoadParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
backend:
  base_url: http://example.test/api
channel:
  reconnect_attempts: 3
  reconnect_delay: 500ms
store:
  refresh_interval: 5s
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://example.test/api", cfg.Backend.BaseURL)
	assert.Equal(t, 3, cfg.Channel.ReconnectAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Channel.ReconnectDelay.Std())
	assert.Equal(t, 5*time.Second, cfg.Store.RefreshInterval.Std())
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("store:\n  refresh_interval: -1s\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MAITRED_API_URL", "http://override.test/api")
	t.Setenv("MAITRED_PORT", "7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "http://override.test/api", cfg.Backend.BaseURL)
	assert.Equal(t, 7070, cfg.Server.Port)
}
