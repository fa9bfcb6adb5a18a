package middleware

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/ginx"
	"github.com/simp-lee/logger"
)

const requestIDHeader = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestIDConfig controls request-id reuse behavior.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID returns a gin middleware that assigns a unique request ID to each
// request. Upstream X-Request-ID values are not trusted.
//
// The request ID is:
//   - Stored in gin.Context through ginx.SetRequestID
//   - Set as the X-Request-ID response header and exposed to CORS clients
//   - Stored in the Go context via logger.WithContextAttrs for structured logging
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig returns a gin middleware that assigns request IDs with
// ginx.RequestID. When TrustUpstream is enabled, an incoming X-Request-ID of
// up to 64 letters, digits or dashes is reused; anything else is replaced.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	opts := []ginx.RequestIDOption{
		ginx.WithRequestIDHeader(requestIDHeader),
		ginx.WithContextInjector(injectRequestID),
	}
	if !cfg.TrustUpstream {
		opts = append(opts, ginx.WithIgnoreIncoming())
	}

	chain := ginx.NewChain()
	if cfg.TrustUpstream {
		chain.Use(dropInvalidRequestID)
	}
	return chain.Use(ginx.RequestID(opts...)).Build()
}

func injectRequestID(ctx context.Context, id string) context.Context {
	return logger.WithContextAttrs(ctx, slog.String("request_id", id))
}

func dropInvalidRequestID(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(requestIDHeader); id != "" && !requestIDPattern.MatchString(id) {
			c.Request.Header.Del(requestIDHeader)
		}
		next(c)
	}
}

// GetRequestID extracts the request ID from the gin.Context.
// Returns an empty string if no request ID is set.
func GetRequestID(c *gin.Context) string {
	id, _ := ginx.GetRequestID(c)
	return id
}
