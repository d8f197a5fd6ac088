package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/termspage/termspage/handlers"
	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/cache"
	"github.com/termspage/termspage/internal/terms/handler"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/internal/terms/service"
	"github.com/termspage/termspage/pkg/logger"
	"github.com/termspage/termspage/pkg/metrics"
	"github.com/termspage/termspage/pkg/middleware"
)

var startTime = time.Now()

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("terms store unavailable: %v", err)
	}
	defer repo.Close(context.Background())
	driver, _ := cfg.Store.ResolveDriver()
	logger.Infof("terms store connected: driver=%s pool=%d", driver, cfg.Store.PoolMax)

	var redisClient *redis.Client
	var respCache service.Cache = cache.NewMemory()
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s:%s unreachable, using process cache only: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			respCache = cache.NewRedis(redisClient, "terms:", cache.NewMemory())
			logger.Infof("terms cache backed by redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	svc := service.New(repo, respCache, terms.Defaults(), service.WithDefaultLang(cfg.DefaultLang))
	seeded, err := svc.EnsureSeeded(ctx)
	if err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	if seeded > 0 {
		logger.Infof("seeded %d terms documents", seeded)
	}
	warmed, err := svc.Warm(ctx)
	if err != nil {
		logger.Fatalf("cache warmup failed: %v", err)
	}
	logger.Infof("terms cache warmed: %d languages", warmed)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, svc, redisClient)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("terms server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// newRouter wires middleware and routes for the long-running server.
func newRouter(cfg *config.Config, svc *service.Service, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestLogger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handler.RegisterRoutes(r, svc)
	handlers.RegisterSwagger(r)

	// readiness: 200 only when the store answers a ping
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": true}
		if err := svc.Ready(c.Request.Context()); err != nil {
			logger.Warnf("readiness: store ping failed: %v", err)
			deps["store"] = false
		}
		if redisClient != nil {
			deps["redis"] = redisClient.Ping(c.Request.Context()).Err() == nil
		}
		uptime := time.Since(startTime).Round(time.Second).String()
		if !deps["store"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
