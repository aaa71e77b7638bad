package mcpserver

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Manifest cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Inspect tool defaults.
	InspectLimit int
	MaxLimit     int

	// Generate tool defaults.
	GenerateStrict bool

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ASYNCSPEC_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("ASYNCSPEC_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("ASYNCSPEC_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("ASYNCSPEC_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("ASYNCSPEC_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("ASYNCSPEC_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("ASYNCSPEC_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		InspectLimit:       envInt("ASYNCSPEC_MCP_INSPECT_LIMIT", 100),
		MaxLimit:           envInt("ASYNCSPEC_MCP_MAX_LIMIT", 1000),
		GenerateStrict:     envBool("ASYNCSPEC_STRICT", false),
		MaxInlineSize:      int64(envInt("ASYNCSPEC_MCP_MAX_INLINE_SIZE", 1024*1024)),
		AllowPrivateIPs:    envBool("ASYNCSPEC_MCP_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", fallback).Msg("invalid bool env var, using default")
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid int env var, using default")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Dur("default", fallback).Msg("invalid duration env var, using default")
		return fallback
	}
	return d
}
