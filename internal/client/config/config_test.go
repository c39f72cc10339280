package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_url":      "http://json.example:9000",
		"request_timeout": "30s",
	})

	t.Run("json only", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := LoadConfig()
		assert.Equal(t, "http://json.example:9000", cfg.ServerURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("flags override json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path, "-a", "http://flag.example", "-t", "5"}

		cfg := LoadConfig()
		assert.Equal(t, "http://flag.example", cfg.ServerURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})

	t.Run("flags without timeout keep json seconds", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path, "-a", "http://flag.example"}

		cfg := LoadConfig()
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no sources", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := LoadConfig()
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	})
}

func TestParseJSON_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	os.Args = []string{"testbin", "-c", path}

	assert.Panics(t, func() { parseJSON(&Config{}) })
}
