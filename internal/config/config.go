package config

import "time"

// Config holds runtime settings for the apicli command.
//
// Units: Timeout is a time.Duration (e.g., 30*time.Second).
type Config struct {
	BaseURL string
	// AuthURL defaults to BaseURL when empty.
	AuthURL string
	APICode string

	// SessionDSN is the SQLite database holding the session.
	SessionDSN string
	// RedisAddr, when set, keeps the session in Redis instead of SQLite.
	RedisAddr string
	// PageURL is the page location used for SSO and page tokens.
	// Defaults to BaseURL when empty.
	PageURL string

	Timeout  time.Duration
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/"
	c.SessionDSN = "session.db"
	c.Timeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// EffectiveAuthURL returns AuthURL, or BaseURL when it is unset.
func (c *Config) EffectiveAuthURL() string {
	if c.AuthURL != "" {
		return c.AuthURL
	}
	return c.BaseURL
}

// EffectivePageURL returns PageURL, or BaseURL when it is unset.
func (c *Config) EffectivePageURL() string {
	if c.PageURL != "" {
		return c.PageURL
	}
	return c.BaseURL
}
