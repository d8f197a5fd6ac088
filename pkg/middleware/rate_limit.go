package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/termspage/termspage/pkg/metrics"
	"golang.org/x/time/rate"
)

// ipLimiters is a per-client-IP token-bucket store.
type ipLimiters struct {
	store sync.Map // map[string]*rate.Limiter
	rps   float64
	burst int
}

func (l *ipLimiters) get(key string) *rate.Limiter {
	if v, ok := l.store.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.store.LoadOrStore(key, rate.NewLimiter(rate.Limit(l.rps), l.burst))
	return v.(*rate.Limiter)
}

func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return ip
}

// RateLimitMiddleware enforces a token bucket per client IP.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := &ipLimiters{rps: rps, burst: burst}
	return func(c *gin.Context) {
		if !limiters.get("ip:" + clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
