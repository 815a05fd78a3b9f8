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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_SourcesAndFormats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"base_url":  "https://api.example.com/v1/",
		"auth_url":  "https://auth.example.com/",
		"api_code":  "code-1",
		"page_url":  "https://app.example.com/?token=abc",
		"timeout":   "10s",
		"log_level": "debug",
	})
	yamlPath := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(
		"base_url: https://yaml.example.com/\nredis_addr: 127.0.0.1:6379\ntimeout: 2000000000\n"), 0o600))

	t.Run("loads JSON from -config", func(t *testing.T) {
		isolate(t, "-config", jsonPath)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "https://api.example.com/v1/", cfg.BaseURL)
		assert.Equal(t, "https://auth.example.com/", cfg.AuthURL)
		assert.Equal(t, "code-1", cfg.APICode)
		assert.Equal(t, "https://app.example.com/?token=abc", cfg.PageURL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "session.db", cfg.SessionDSN, "unset fields keep their value")
	})

	t.Run("loads YAML from -c", func(t *testing.T) {
		isolate(t, "-c", yamlPath)

		cfg := &Config{}
		parseFile(cfg)

		assert.Equal(t, "https://yaml.example.com/", cfg.BaseURL)
		assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		isolate(t)

		cfg := &Config{BaseURL: "defaults", Timeout: 42 * time.Second}
		parseFile(cfg)

		assert.Equal(t, "defaults", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.Timeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		isolate(t, "-config", bad)

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("bad duration → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("timeout: soon\n"), 0o600))
		isolate(t, "-c", bad)

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		isolate(t, "-c", filepath.Join(dir, "nope.json"))

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
