package middleware

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/ginx"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to make cross-origin requests.
	// ["*"] allows any origin; an empty list denies all of them.
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	// MaxAge is how long browsers may cache a preflight result.
	MaxAge time.Duration
}

// ErrWildcardCredentials is returned by Validate for a wildcard origin with
// credentials enabled, which browsers reject.
var ErrWildcardCredentials = errors.New("cors: wildcard origin cannot be combined with credentials")

// DefaultCORSConfig returns a permissive CORS configuration suitable for development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        24 * time.Hour,
	}
}

// Validate reports configurations ginx.CORS refuses to build.
func (c CORSConfig) Validate() error {
	if c.AllowCredentials && slices.Contains(c.AllowOrigins, "*") {
		return ErrWildcardCredentials
	}
	return nil
}

// CORS returns a gin middleware built from DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a gin middleware that handles Cross-Origin Resource
// Sharing with ginx.CORS. It panics when cfg fails Validate; callers holding
// user supplied settings should call Validate first.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return ginx.NewChain().Use(ginx.CORS(
		ginx.WithAllowOrigins(cfg.AllowOrigins...),
		ginx.WithAllowMethods(cfg.AllowMethods...),
		ginx.WithAllowHeaders(cfg.AllowHeaders...),
		ginx.WithExposeHeaders(cfg.ExposeHeaders...),
		ginx.WithAllowCredentials(cfg.AllowCredentials),
		ginx.WithMaxAge(cfg.MaxAge),
	)).Build()
}
