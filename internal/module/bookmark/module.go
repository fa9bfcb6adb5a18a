package bookmark

import "github.com/gin-gonic/gin"

// BookmarkModule implements the app.Module interface for bookmarks.
type BookmarkModule struct {
	handler *BookmarkHandler
}

// NewModule creates a new BookmarkModule with the given handler.
// Panics if h is nil.
func NewModule(h *BookmarkHandler) *BookmarkModule {
	if h == nil {
		panic("bookmark.NewModule: handler must not be nil")
	}
	return &BookmarkModule{handler: h}
}

// RegisterRoutes registers bookmark API routes.
func (m *BookmarkModule) RegisterRoutes(api *gin.RouterGroup) {
	api.PUT("/contents/:id/bookmark", m.handler.Toggle)
	api.GET("/bookmarks", m.handler.List)
}
