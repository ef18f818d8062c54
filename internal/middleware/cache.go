package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RAJESH7500/reservation-app/internal/config"
)

// The response cache sits in front of the reservation and table
// listings.  GET responses are stored under a key derived from the
// route and query string, and every stored key is indexed in a Redis
// set per resource group ("reservations" or "tables").  A successful
// write on a group drops the whole set, so a freshly seated table or a
// new booking is visible on the very next read even inside the TTL.

// bodyRecorder tees the response body into a bounded buffer while
// forwarding it to the client.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (br *bodyRecorder) WriteHeader(code int) {
	br.status = code
	br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	if br.limit <= 0 || br.size+int64(len(b)) <= br.limit {
		br.buf.Write(b)
	} else {
		// Over the cap: drop the partial copy, the entry would be truncated.
		br.buf.Reset()
		br.limit = -1
	}
	br.size += int64(len(b))
	return br.ResponseWriter.Write(b)
}

func (br *bodyRecorder) cacheable() bool {
	return br.status == http.StatusOK && br.limit >= 0
}

// cacheGroup maps a request path to its invalidation group: the first
// path segment, so /reservations/7/status and /reservations share a
// fate.
func cacheGroup(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}

func cacheKey(prefix, group string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%s:%x", prefix, group, sum[:])
}

func indexKey(prefix, group string) string {
	return prefix + ":idx:" + group
}

// flushGroup deletes every cached entry of the group along with the
// index set itself.
func flushGroup(ctx context.Context, rdb *redis.Client, prefix, group string) {
	idx := indexKey(prefix, group)
	keys, err := rdb.SMembers(ctx, idx).Result()
	if err != nil {
		return
	}
	keys = append(keys, idx)
	_ = rdb.Del(ctx, keys...).Err()
}

// NewRedisCache returns the caching middleware.  With caching disabled
// or no Redis client available it degrades to a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			group := cacheGroup(c.Request().URL.Path)

			// Writes bust the group's cache after the handler succeeds.
			if c.Request().Method != http.MethodGet {
				err := next(c)
				if err == nil && c.Response().Status < http.StatusBadRequest {
					flushGroup(c.Request().Context(), rdb, cfg.Prefix, group)
					// Seating mutates both resources: the table row and the
					// reservation status.
					if group == "tables" {
						flushGroup(c.Request().Context(), rdb, cfg.Prefix, "reservations")
					}
				}
				return err
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, group, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			br := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = br
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if br.cacheable() {
				pipe := rdb.Pipeline()
				pipe.SetEx(context.Background(), key, br.buf.Bytes(), ttl)
				pipe.SAdd(context.Background(), indexKey(cfg.Prefix, group), key)
				pipe.Expire(context.Background(), indexKey(cfg.Prefix, group), ttl)
				_, _ = pipe.Exec(context.Background())
			}
			return nil
		}
	}
}
