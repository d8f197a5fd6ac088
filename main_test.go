package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/cache"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/internal/terms/service"
)

type pingFailRepo struct{ *repository.MemoryRepo }

func (pingFailRepo) Ping(context.Context) error { return errors.New("dial tcp: connection refused") }

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouterServesWarmedTerms(t *testing.T) {
	ctx := context.Background()
	svc := service.New(repository.NewMemoryRepo(), cache.NewMemory(), terms.Defaults())
	_, err := svc.EnsureSeeded(ctx)
	require.NoError(t, err)
	_, err = svc.Warm(ctx)
	require.NoError(t, err)

	r := newRouter(&config.Config{}, svc, nil)

	require.Equal(t, http.StatusOK, get(r, "/api/terms?lang=en").Code)
	require.Equal(t, http.StatusOK, get(r, "/api/health").Code)
	require.Equal(t, http.StatusOK, get(r, "/ready").Code)
	require.Equal(t, http.StatusOK, get(r, "/metrics").Code)
	require.Equal(t, http.StatusOK, get(r, "/swagger/doc.json").Code)
}

func TestRouterReadyReportsStoreOutage(t *testing.T) {
	svc := service.New(pingFailRepo{repository.NewMemoryRepo()}, cache.NewMemory(), terms.Defaults())
	r := newRouter(&config.Config{}, svc, nil)

	w := get(r, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"store":false`)
}

func TestRouterRedisRateLimit(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	svc := service.New(repository.NewMemoryRepo(), cache.NewMemory(), terms.Defaults())
	cfg := &config.Config{RateLimit: config.RateLimitConfig{Enabled: true, UseRedis: true, RPS: 0, Burst: 1, WindowSeconds: 60}}
	r := newRouter(cfg, svc, client)

	require.Equal(t, http.StatusOK, get(r, "/api/health").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/api/health").Code)
}
