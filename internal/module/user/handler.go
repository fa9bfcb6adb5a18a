package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toResponse(user))
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, pkg.MapPage(result, toResponse))
}

// UpdateProfile handles PUT /api/v1/users/me/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toResponse(user))
}

// UpdatePreferences handles PUT /api/v1/users/me/preferences.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req UpdatePreferencesRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	if req.Locale == "" && req.Theme == "" {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "locale or theme is required", nil))
		return
	}

	user, err := h.svc.UpdatePreferences(c.Request.Context(), userID, req.Locale, req.Theme)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toResponse(user))
}
