package content

import "github.com/gin-gonic/gin"

// ContentModule implements the app.Module interface for collections and contents.
type ContentModule struct {
	handler *ContentHandler
}

// NewModule creates a new ContentModule with the given handler.
// Panics if h is nil.
func NewModule(h *ContentHandler) *ContentModule {
	if h == nil {
		panic("content.NewModule: handler must not be nil")
	}
	return &ContentModule{handler: h}
}

// RegisterRoutes registers collection and content API routes.
func (m *ContentModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/collections", m.handler.CreateCollection)
	api.GET("/collections", m.handler.ListCollections)
	api.GET("/collections/:id", m.handler.GetCollection)

	api.POST("/contents", m.handler.CreateContent)
	api.GET("/contents", m.handler.ListContents)
	api.GET("/contents/:id", m.handler.GetContent)
	api.DELETE("/contents/:id", m.handler.DeleteContent)
}
