package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("APISDK_BASE_URL", "https://env.example.com/")
		t.Setenv("APISDK_REDIS_ADDR", "redis:6379")
		t.Setenv("APISDK_TIMEOUT", "1m")

		cfg := &Config{BaseURL: "default", SessionDSN: "session.db"}
		parseEnv(cfg)

		assert.Equal(t, "https://env.example.com/", cfg.BaseURL)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Equal(t, "session.db", cfg.SessionDSN)
	})

	t.Run(".env file, process wins", func(t *testing.T) {
		isolate(t)
		dotEnvFile = filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(dotEnvFile, []byte(
			"APISDK_API_CODE=dotenv-code\nAPISDK_LOG_LEVEL=warn\nOTHER=1\n"), 0o600))
		t.Setenv("APISDK_LOG_LEVEL", "error")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "dotenv-code", cfg.APICode)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("bad timeout → panics", func(t *testing.T) {
		isolate(t)
		t.Setenv("APISDK_TIMEOUT", "forever")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
