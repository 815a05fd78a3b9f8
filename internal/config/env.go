package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "APISDK_"

// dotEnvFile is read relative to the working directory.
var dotEnvFile = ".env"

// parseEnv overlays cfg with APISDK_* variables taken from dotEnvFile and
// the process environment. A missing .env file is not an error. Panics on an
// unreadable .env or a malformed APISDK_TIMEOUT.
func parseEnv(cfg *Config) {
	vars, err := godotenv.Read(dotEnvFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		vars = map[string]string{}
	}

	lookup := func(name string) string {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v
		}
		return vars[envPrefix+name]
	}

	setString(&cfg.BaseURL, lookup("BASE_URL"))
	setString(&cfg.AuthURL, lookup("AUTH_URL"))
	setString(&cfg.APICode, lookup("API_CODE"))
	setString(&cfg.SessionDSN, lookup("SESSION_DSN"))
	setString(&cfg.RedisAddr, lookup("REDIS_ADDR"))
	setString(&cfg.PageURL, lookup("PAGE_URL"))
	setString(&cfg.LogLevel, lookup("LOG_LEVEL"))

	if v := lookup("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.Timeout = d
	}
}
