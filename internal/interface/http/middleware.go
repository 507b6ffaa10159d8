package http

import (
	"math"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alkias2/SolunarBase/internal/infra/config"
)

// errorHandlingMiddleware serializes the last recorded error into the
// {"error": {code, message}} envelope after the chain finishes. Handlers
// that already wrote a body are left alone.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request errored", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "cause", httpErr.Err)
		} else {
			logger.Warn("request rejected", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "cause", httpErr.Err)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

// rateLimitMiddleware throttles per client IP with a token bucket. Forecast
// computation is cheap but not free, and the endpoints are unauthenticated
// by default.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.allow(ip) {
			c.Next()
			return
		}
		logger.Warn("client throttled", "ip", ip, "path", c.Request.URL.Path)
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

type ipRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket

	refillPerMinute float64
	burst           float64
	idleTTL         time.Duration
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig) *ipRateLimiter {
	return &ipRateLimiter{
		buckets:         make(map[string]*tokenBucket),
		refillPerMinute: float64(cfg.RequestsPerMinute),
		burst:           float64(cfg.Burst),
		idleTTL:         5 * time.Minute,
	}
}

// allow takes one token from the client's bucket, refilling in proportion
// to the time since the bucket was last touched. Buckets idle past the TTL
// are dropped so the map stays bounded.
func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &tokenBucket{tokens: l.burst, lastSeen: now}
		l.buckets[ip] = b
	} else {
		if idle := now.Sub(b.lastSeen).Minutes(); idle > 0 {
			b.tokens = math.Min(l.burst, b.tokens+idle*l.refillPerMinute)
		}
		b.lastSeen = now
	}

	l.evictIdleLocked(now)

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *ipRateLimiter) evictIdleLocked(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, ip)
		}
	}
}
