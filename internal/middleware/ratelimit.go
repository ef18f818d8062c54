package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RAJESH7500/reservation-app/internal/config"
)

// tokenBucketScript implements a shared token bucket in Redis.  The
// whole check-and-decrement runs server-side in one call, so multiple
// API instances draw from the same bucket without racing each other.
// Returns {allowed, remaining tokens, retry-after in ms}.
const tokenBucketScript = `
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + (intervals * refill_tokens))
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    local until_next = interval_ms - (now_ms - last_refill)
    if until_next < 0 then until_next = 0 end
    retry_after_ms = until_next
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`

// NewTokenBucket returns the rate limiting middleware.  When disabled
// or Redis is unavailable it passes requests through untouched, and a
// Redis error at request time fails open rather than blocking the
// booking flow.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	script := redis.NewScript(tokenBucketScript)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			args := []any{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}

			vals, err := script.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				}
				return next(c)
			}

			arr, ok := vals.([]any)
			if !ok || len(arr) != 3 {
				if cfg.Debug {
					c.Logger().Warnf("ratelimit: unexpected script result for key=%s: %#v", key, vals)
				}
				return next(c)
			}
			allowed := toInt64(arr[0]) == 1
			remaining := toInt64(arr[1])
			retryMs := toInt64(arr[2])

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(retryMs) / 1000.0))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "rate limit exceeded",
					"retry_after": secs,
				})
			}

			if cfg.Debug {
				c.Response().Header().Set("X-RateLimit-Key", key)
			}
			return next(c)
		}
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// rateKey scopes the bucket.  The default pairs client IP with method
// and route, so a burst of POST /reservations does not starve the
// dashboard reads from the same address.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "route":
		parts = append(parts, "route", route)
	default: // ip_route
		parts = append(parts, "ip", ip, "route", route)
	}
	return strings.Join(parts, ":")
}
