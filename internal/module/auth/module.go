package auth

import "github.com/gin-gonic/gin"

// AuthModule mounts the sign-in, sign-up and profile endpoints.
type AuthModule struct {
	handler *AuthHandler
	guards  []gin.HandlerFunc
}

// NewModule creates the auth module. guards run in front of login and
// register only, typically a stricter per-client rate limit against
// credential stuffing. Panics if h is nil.
func NewModule(h *AuthHandler, guards ...gin.HandlerFunc) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h, guards: guards}
}

// RegisterRoutes mounts /auth on api. login and register must be listed in
// auth.public_paths; me requires a token.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/auth")
	g.POST("/login", m.credentialChain(m.handler.Login)...)
	g.POST("/register", m.credentialChain(m.handler.Register)...)
	g.GET("/me", m.handler.Me)
}

func (m *AuthModule) credentialChain(h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(m.guards)+1)
	chain = append(chain, m.guards...)
	return append(chain, h)
}
