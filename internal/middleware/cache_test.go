package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/RAJESH7500/reservation-app/internal/config"
)

func TestCacheGroup(t *testing.T) {
	cases := map[string]string{
		"/reservations":   "reservations",
		"/reservations/7": "reservations",
		"/tables/3/seat":  "tables",
		"/tables":         "tables",
		"/":               "root",
	}
	for path, want := range cases {
		if got := cacheGroup(path); got != want {
			t.Fatalf("cacheGroup(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestCacheKey_QueryChangesKey(t *testing.T) {
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/reservations")
		return c
	}

	byDate := cacheKey("resv:cache", "reservations", ctxFor("/reservations?date=2025-03-12"))
	otherDate := cacheKey("resv:cache", "reservations", ctxFor("/reservations?date=2025-03-13"))
	assert.NotEqual(t, byDate, otherDate)
	assert.Equal(t, byDate, cacheKey("resv:cache", "reservations", ctxFor("/reservations?date=2025-03-12")))
}

func TestNewRedisCache_DisabledPassesThrough(t *testing.T) {
	e := echo.New()
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRateKey_Strategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	req.Header.Set("X-Real-Ip", "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/reservations")

	cases := map[string]string{
		"ip":       "rl:ip:203.0.113.9",
		"route":    "rl:route:POST /reservations",
		"ip_route": "rl:ip:203.0.113.9:route:POST /reservations",
	}
	for strategy, want := range cases {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}
		assert.Equal(t, want, rateKey(cfg, c), "strategy %s", strategy)
	}
}
