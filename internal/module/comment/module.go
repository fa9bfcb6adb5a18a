package comment

import "github.com/gin-gonic/gin"

// CommentModule implements the app.Module interface for comments.
type CommentModule struct {
	handler *CommentHandler
}

// NewModule creates a new CommentModule with the given handler.
// Panics if h is nil.
func NewModule(h *CommentHandler) *CommentModule {
	if h == nil {
		panic("comment.NewModule: handler must not be nil")
	}
	return &CommentModule{handler: h}
}

// RegisterRoutes registers comment API routes.
func (m *CommentModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/contents/:id/comments", m.handler.List)
	api.POST("/contents/:id/comments", m.handler.Create)
	api.DELETE("/comments/:id", m.handler.Delete)
}
