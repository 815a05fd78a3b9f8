package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/apisdk/internal/flagx"
	"github.com/dmitrijs2005/apisdk/internal/timex"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Empty fields
// leave the current value alone.
type FileConfig struct {
	BaseURL    string         `json:"base_url" yaml:"base_url"`
	AuthURL    string         `json:"auth_url" yaml:"auth_url"`
	APICode    string         `json:"api_code" yaml:"api_code"`
	SessionDSN string         `json:"session_dsn" yaml:"session_dsn"`
	RedisAddr  string         `json:"redis_addr" yaml:"redis_addr"`
	PageURL    string         `json:"page_url" yaml:"page_url"`
	Timeout    timex.Duration `json:"timeout" yaml:"timeout"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c or -config. Nothing is
// loaded when neither flag is given. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.AuthURL, fc.AuthURL)
	setString(&cfg.APICode, fc.APICode)
	setString(&cfg.SessionDSN, fc.SessionDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.PageURL, fc.PageURL)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.Timeout.Duration > 0 {
		cfg.Timeout = fc.Timeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
