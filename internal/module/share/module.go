package share

import "github.com/gin-gonic/gin"

// ShareModule implements the app.Module interface for shares.
type ShareModule struct {
	handler *ShareHandler
}

// NewModule creates a new ShareModule with the given handler.
// Panics if h is nil.
func NewModule(h *ShareHandler) *ShareModule {
	if h == nil {
		panic("share.NewModule: handler must not be nil")
	}
	return &ShareModule{handler: h}
}

// RegisterRoutes registers share API routes.
func (m *ShareModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contents/:id/shares", m.handler.Create)
	api.GET("/shares/:token", m.handler.Resolve)
}
