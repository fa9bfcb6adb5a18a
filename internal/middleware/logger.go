package middleware

import (
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveQueryKeys are query parameters whose values are masked in access logs.
var sensitiveQueryKeys = []string{"token", "access_token", "jwt", "password", "secret", "authorization"}

// LoggerConfig tunes the access log.
type LoggerConfig struct {
	// SkipPaths are request paths that are never logged, such as health probes.
	SkipPaths []string
}

// Logger returns a gin middleware that writes one access log record per
// request with LoggerConfig defaults.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return LoggerWithConfig(logger, LoggerConfig{})
}

// LoggerWithConfig returns the access log middleware. 5xx responses log at
// error, 4xx at warn and everything else at info. The request context is
// passed along so request_id and user_id attributes added by other
// middleware show up on the record.
func LoggerWithConfig(logger *slog.Logger, cfg LoggerConfig) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("bytes", max(c.Writer.Size(), 0)),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		if q := redactQuery(c.Request.URL.RawQuery); q != "" {
			attrs = append(attrs, slog.String("query", q))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}

// redactQuery masks credential values in a raw query string.
func redactQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "[unparseable]"
	}
	for key := range values {
		if slices.Contains(sensitiveQueryKeys, strings.ToLower(key)) {
			values.Set(key, "[REDACTED]")
		}
	}
	return values.Encode()
}
