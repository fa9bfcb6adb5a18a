package notification

import "github.com/gin-gonic/gin"

// NotificationModule implements the app.Module interface for notifications.
type NotificationModule struct {
	handler *NotificationHandler
}

// NewModule creates a new NotificationModule with the given handler.
// Panics if h is nil.
func NewModule(h *NotificationHandler) *NotificationModule {
	if h == nil {
		panic("notification.NewModule: handler must not be nil")
	}
	return &NotificationModule{handler: h}
}

// RegisterRoutes registers notification API routes.
func (m *NotificationModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/notifications", m.handler.List)
	api.GET("/notifications/unread-count", m.handler.UnreadCount)
	api.PUT("/notifications/read-all", m.handler.MarkAllRead)
	api.PUT("/notifications/:id/read", m.handler.MarkRead)
}
