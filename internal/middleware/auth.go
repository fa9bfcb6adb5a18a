package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/ginx"
	"github.com/simp-lee/jwt"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/portal/internal/pkg"
)

const userIDContextKey = "user_id"

// Auth returns a gin middleware that requires a valid "Authorization: Bearer"
// token on every request whose path is not listed in publicPaths. Token
// checks are done by ginx.Auth against tokens.
//
// The authenticated user ID is stored in gin.Context under "user_id" and added
// to the logging context. Missing or invalid tokens get a 401 JSON response:
//
//	{"code": 401, "message": "invalid token", "data": null}
func Auth(tokens jwt.Service, publicPaths []string) gin.HandlerFunc {
	authenticate := ginx.Auth(tokens)
	var protect ginx.Middleware = func(next gin.HandlerFunc) gin.HandlerFunc {
		return authenticate(bindUserID(next))
	}

	chain := ginx.NewChain().WithErrorFormat(ErrorBody)
	if len(publicPaths) > 0 {
		chain.Unless(ginx.PathIs(publicPaths...), protect)
	} else {
		chain.Use(protect)
	}
	return chain.Build()
}

// bindUserID converts the subject set by ginx.Auth into the numeric user ID
// handlers read through GetUserID.
func bindUserID(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := ginx.GetUserID(c)
		userID, err := pkg.ParseUserID(raw)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "token rejected", slog.Any("error", err))
			ginx.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(userIDContextKey, userID)
		ctx := logger.WithContextAttrs(c.Request.Context(), slog.Uint64("user_id", uint64(userID)))
		c.Request = c.Request.WithContext(ctx)

		next(c)
	}
}

// GetUserID extracts the authenticated user ID from the gin.Context.
// Returns 0 and false if the request was not authenticated.
func GetUserID(c *gin.Context) (uint, bool) {
	if v, exists := c.Get(userIDContextKey); exists {
		if id, ok := v.(uint); ok && id != 0 {
			return id, true
		}
	}
	return 0, false
}

// ErrorBody formats ginx middleware rejections in the API response envelope.
func ErrorBody(status int, message string) any {
	return pkg.Response{Code: status, Message: message}
}
