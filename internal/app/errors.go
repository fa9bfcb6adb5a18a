package app

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/pkg"
)

// renderError sends an error response appropriate for the client.
// API paths and JSON clients get the pkg.Response envelope; browsers get a
// short plain text body.
func renderError(c *gin.Context, code int, message string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || !prefersText(c) {
		c.JSON(code, pkg.Response{Code: code, Message: message})
		return
	}
	c.Data(code, "text/plain; charset=utf-8",
		[]byte(fmt.Sprintf("%d %s", code, defaultStatusText(code))))
}

// prefersText reports whether the client asked for HTML and did not ask for
// JSON explicitly.
func prefersText(c *gin.Context) bool {
	accept := strings.ToLower(c.GetHeader("Accept"))
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		return false
	}
	return strings.Contains(accept, "text/html")
}

// defaultStatusText returns a short human-readable label for common error codes.
func defaultStatusText(code int) string {
	switch code {
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 408:
		return "Request Timeout"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	default:
		return "Error"
	}
}
