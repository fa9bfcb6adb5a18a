package app

import "github.com/gin-gonic/gin"

// Module is one feature area of the portal (auth, content, ratings and so
// on). Routes are mounted on the versioned API group, behind the shared
// auth middleware; public endpoints opt out through auth.public_paths.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup)
}
