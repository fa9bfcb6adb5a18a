package rating

import "github.com/gin-gonic/gin"

// RatingModule implements the app.Module interface for content ratings.
type RatingModule struct {
	handler *RatingHandler
}

// NewModule creates a new RatingModule with the given handler.
// Panics if h is nil.
func NewModule(h *RatingHandler) *RatingModule {
	if h == nil {
		panic("rating.NewModule: handler must not be nil")
	}
	return &RatingModule{handler: h}
}

// RegisterRoutes registers rating API routes.
func (m *RatingModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/contents/:id/rating", m.handler.Get)
	api.PUT("/contents/:id/rating", m.handler.Submit)
	api.DELETE("/contents/:id/rating", m.handler.Retract)
}
