package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig controls the read cache in front of the dashboard views.
// Reservation and table listings are read far more often than they
// change, so GET responses are held in Redis for TTL and flushed as a
// group whenever a write lands on the same resource.  MaxBodyBytes
// bounds the size of a cached response body.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from environment variables,
// falling back to defaults suited to a single restaurant's traffic.
// The TTL stays short because the dashboard polls for seat changes.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "15s")),
		Prefix:       getenv("CACHE_PREFIX", "resv:cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

// Env helpers shared with redis.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
