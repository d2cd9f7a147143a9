package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, home, contents string) {
	t.Helper()

	dir := filepath.Join(home, configDir)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "web_chat", cfg.Backend.Source)
	assert.Equal(t, 2*time.Second, cfg.Poll.Delay)
	assert.Equal(t, 10, cfg.Poll.Limit)
	assert.Equal(t, 5*time.Second, cfg.Link.StatusTTL)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, dataDir), cfg.Storage.Dir)
	assert.Equal(t, filepath.Join(home, dataDir, "sessions.toml"), cfg.Storage.SessionsPath())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadReadsConfigFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, `
[backend]
base_url = "https://support.example.com/api/v1"
timeout = "3s"

[poll]
delay = "500ms"
limit = 25

[storage]
backend = "pebble"
dir = "~/chat-data"
`)
	t.Setenv("SC_POLL_LIMIT", "7")
	t.Setenv("SC_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://support.example.com/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Delay)
	assert.Equal(t, 7, cfg.Poll.Limit)
	assert.Equal(t, StoragePebble, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "chat-data"), cfg.Storage.Dir)
	assert.Equal(t, filepath.Join(home, "chat-data", "pebble"), cfg.Storage.PebbleDir())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad scheme", env: map[string]string{"SC_BACKEND_BASE_URL": "ftp://example.com"}, wantErr: KeyBaseURL},
		{name: "missing host", env: map[string]string{"SC_BACKEND_BASE_URL": "http://"}, wantErr: KeyBaseURL},
		{name: "bad duration", env: map[string]string{"SC_POLL_DELAY": "soon"}, wantErr: KeyPollDelay},
		{name: "negative ttl", env: map[string]string{"SC_LINK_STATUS_TTL": "-1s"}, wantErr: KeyLinkStatusTTL},
		{name: "zero limit", env: map[string]string{"SC_POLL_LIMIT": "0"}, wantErr: KeyPollLimit},
		{name: "unknown backend", env: map[string]string{"SC_STORAGE_BACKEND": "redis"}, wantErr: KeyStorageBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, "[backend\nbase_url = ")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
