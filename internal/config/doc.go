// Package config loads runtime configuration for the apicli command.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. A .env file in the working directory, then APISDK_* environment
//     variables (process environment wins over .env).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the API
//	-u string   URL hosting auth/token and auth/identity
//	-k string   API code exchanged for a token
//	-t int      HTTP timeout (seconds)
//
// Environment variables
//
//	APISDK_BASE_URL, APISDK_AUTH_URL, APISDK_API_CODE, APISDK_SESSION_DSN,
//	APISDK_REDIS_ADDR, APISDK_PAGE_URL, APISDK_TIMEOUT ("30s"), APISDK_LOG_LEVEL
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com/v1/",
//	  "api_code": "app-code",
//	  "session_dsn": "session.db",
//	  "timeout": "30s",
//	  "log_level": "debug"
//	}
//
// Like the flag parser, the file and environment stages panic on malformed
// input; LoadConfig is meant to run once at startup.
package config
