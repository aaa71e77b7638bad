// Package config holds the runtime settings shared by the asyncspec CLI,
// the documentation server and the MCP server.
package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvLogLevel     = "ASYNCSPEC_LOG_LEVEL"
	EnvLogFormat    = "ASYNCSPEC_LOG_FORMAT"
	EnvAddr         = "ASYNCSPEC_ADDR"
	EnvReadTimeout  = "ASYNCSPEC_READ_TIMEOUT"
	EnvWriteTimeout = "ASYNCSPEC_WRITE_TIMEOUT"
	EnvStrict       = "ASYNCSPEC_STRICT"
	EnvWatch        = "ASYNCSPEC_WATCH"
	EnvContentType  = "ASYNCSPEC_CONTENT_TYPE"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Defaults.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Config is the runtime configuration.
type Config struct {
	LogLevel  zerolog.Level
	LogFormat string

	// Doc server settings.
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Generation defaults.
	Strict      bool
	Watch       bool
	ContentType string

	// warnings collects invalid values seen while loading. They are logged
	// once a logger exists.
	warnings []warning
}

type warning struct {
	key, value string
}

// Load reads configuration from ASYNCSPEC_* environment variables.
// Invalid values fall back to the default and are reported by Logger.
func Load() *Config {
	c := &Config{}
	c.LogLevel = c.envLevel(EnvLogLevel, zerolog.InfoLevel)
	c.LogFormat = c.envFormat(EnvLogFormat, FormatConsole)
	c.Addr = envString(EnvAddr, DefaultAddr)
	c.ReadTimeout = c.envDuration(EnvReadTimeout, DefaultReadTimeout)
	c.WriteTimeout = c.envDuration(EnvWriteTimeout, DefaultWriteTimeout)
	c.Strict = c.envBool(EnvStrict, false)
	c.Watch = c.envBool(EnvWatch, false)
	c.ContentType = envString(EnvContentType, "")
	return c
}

// Logger returns a zerolog logger writing to w in the configured format
// and level. Invalid environment values seen by Load are logged at warn.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	if c.LogFormat == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
	for _, wn := range c.warnings {
		logger.Warn().Str("key", wn.key).Str("value", wn.value).Msg("invalid environment value, using default")
	}
	return logger
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) invalid(key, value string) {
	c.warnings = append(c.warnings, warning{key: key, value: value})
}

func (c *Config) envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.invalid(key, v)
		return fallback
	}
	return b
}

func (c *Config) envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.invalid(key, v)
		return fallback
	}
	return d
}

func (c *Config) envLevel(key string, fallback zerolog.Level) zerolog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	level, err := zerolog.ParseLevel(v)
	if err != nil || level == zerolog.NoLevel {
		c.invalid(key, v)
		return fallback
	}
	return level
}

func (c *Config) envFormat(key, fallback string) string {
	v := os.Getenv(key)
	switch v {
	case "":
		return fallback
	case FormatConsole, FormatJSON:
		return v
	}
	c.invalid(key, v)
	return fallback
}
