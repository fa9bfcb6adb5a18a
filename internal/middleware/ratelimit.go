package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/ginx"
)

const defaultRateLimitIdleTTL = 10 * time.Minute

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	RPS   int
	Burst int
	// IdleTTL is how long an unused client bucket is kept. Zero means 10 minutes.
	IdleTTL time.Duration
}

// RateLimit returns a gin middleware that limits requests per client IP with
// ginx.RateLimit. Requests over the limit get a 429 JSON response in the API
// envelope and a Retry-After header. Call ginx.CleanupRateLimiters after the
// server has stopped to release the bucket store.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = defaultRateLimitIdleTTL
	}
	store := ginx.NewMemoryLimiterStore(ttl)

	return ginx.NewChain().
		WithErrorFormat(ErrorBody).
		Use(ginx.RateLimit(cfg.RPS, cfg.Burst, ginx.WithIP(), ginx.WithStore(store))).
		Build()
}
