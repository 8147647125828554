package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"customer-service/internal/config"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/customers/all", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}, logger)
	defer rl.Close()
	h := rl.Middleware(okHandler())

	t.Run("allows the burst then blocks", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1000").Code)
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1001").Code)

		rec := serve(h, "10.0.0.1:1002")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":{"code":"RATE_LIMITED","message":"Rate limit exceeded"}}`, rec.Body.String())
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.2:1000").Code)
	})
}

func TestRateLimiterDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}, logger)
	defer rl.Close()
	h := rl.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1000").Code)
	}
}

func TestRateLimiterCloseStopsSweeper(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}, logger)

	rl.Close()
	rl.Close()

	select {
	case <-rl.done:
	default:
		t.Fatal("sweeper still running after Close")
	}

	var nilLimiter *RateLimiterMiddleware
	assert.NotPanics(t, nilLimiter.Close)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}, logger)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(limiterIdleTTL / 2)
	rl.allow("10.0.0.2")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	assert.Equal(t, 1, rl.evictIdle())
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "10.0.0.2")
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4431"
	assert.Equal(t, "192.168.1.5", clientKey(req))

	req.RemoteAddr = "192.168.1.5"
	assert.Equal(t, "192.168.1.5", clientKey(req))
}
