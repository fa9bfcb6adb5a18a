package assist

import "github.com/gin-gonic/gin"

// AssistModule implements the app.Module interface for the text tools.
type AssistModule struct {
	handler *AssistHandler
}

// NewModule creates a new AssistModule with the given handler.
// Panics if h is nil.
func NewModule(h *AssistHandler) *AssistModule {
	if h == nil {
		panic("assist.NewModule: handler must not be nil")
	}
	return &AssistModule{handler: h}
}

// RegisterRoutes registers assist API routes.
func (m *AssistModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/assist/summarize", m.handler.Summarize)
	api.POST("/assist/sentiment", m.handler.Sentiment)
	api.GET("/contents/:id/summary", m.handler.ContentSummary)
}
