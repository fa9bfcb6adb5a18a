package user

import "github.com/gin-gonic/gin"

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handler.
// Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// RegisterRoutes registers user API routes. Updates always apply to the
// caller, so there is no PUT on /users/:id.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("", m.handler.List)
	users.GET("/:id", m.handler.Get)
	users.PUT("/me/profile", m.handler.UpdateProfile)
	users.PUT("/me/preferences", m.handler.UpdatePreferences)
}
