// Command terms-fn serves the terms API one request per process: every call
// opens its own store connection and nothing is cached between calls.
// Under a CGI-style runtime (GATEWAY_INTERFACE set) it answers the single
// request on stdin/stdout, otherwise it listens on PORT.
package main

import (
	"context"
	"net/http/cgi"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/handler"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/internal/terms/service"
	"github.com/termspage/termspage/pkg/logger"
	"github.com/termspage/termspage/pkg/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	r := newRouter(newReader(cfg.Ephemeral()))

	if os.Getenv("GATEWAY_INTERFACE") != "" {
		// stdout carries the response; keep logs on stderr
		logger.SetOutput(os.Stderr)
		if err := cgi.Serve(r); err != nil {
			logger.Fatalf("cgi: %v", err)
		}
		return
	}

	logger.Infof("terms function listening on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func newReader(cfg *config.Config) *service.OneShot {
	open := func(ctx context.Context) (repository.Repository, error) {
		return repository.Open(ctx, cfg)
	}
	return service.NewOneShot(open, terms.Defaults(), service.WithDefaultLang(cfg.DefaultLang))
}

func newRouter(reader service.Reader) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(), gin.Recovery())
	handler.RegisterRoutes(r, reader)
	handler.RejectOtherMethods(r)
	return r
}
