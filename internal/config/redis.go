package config

// Redis backs two optional concerns: the response cache over the
// reservation and table listings, and the distributed rate limiter.
// Both degrade to no-ops when no Redis server is reachable, so a nil
// client from NewRedisClient is not an error.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the environment and pings
// it once with a short timeout.  Recognized variables:
//
//	REDIS_ADDR               host:port in one variable
//	REDIS_HOST / REDIS_PORT  set separately, takes precedence over REDIS_ADDR
//	REDIS_PASSWORD           optional password
//	REDIS_DB                 database number, default 0
//	REDIS_TLS                "true" or "1" enables TLS
//
// Returns nil when the server does not answer the ping, which turns
// caching and rate limiting off for this process.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}

	var tlsConf *tls.Config
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        dbNum,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
