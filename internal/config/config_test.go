package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskManager/internal/config"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
api:
  base_url: https://tasks.example.com/api
  timeout: 10s
state:
  dir: /tmp/taskman-test
logging:
  development: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, config.Duration(10*time.Second), cfg.API.Timeout)
	assert.Equal(t, "/tmp/taskman-test", cfg.State.Dir)
	assert.True(t, cfg.Logging.Development)
}

// A missing file is not an error: the defaults apply.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, config.Duration(30*time.Second), cfg.API.Timeout)
	assert.NotEmpty(t, cfg.State.Dir)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://10.0.0.5/api\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5/api", cfg.API.BaseURL)
	assert.Equal(t, config.Duration(30*time.Second), cfg.API.Timeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api: ["), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestStateFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.State.Dir = "/var/lib/taskman"
	assert.Equal(t, filepath.Join("/var/lib/taskman", "token"), cfg.StateFile("token"))
}
