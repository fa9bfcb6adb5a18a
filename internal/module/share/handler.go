package share

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
)

// ShareHandler handles REST API requests for shares.
type ShareHandler struct {
	svc domain.ShareService
}

// NewHandler creates a new ShareHandler with the given service.
func NewHandler(svc domain.ShareService) *ShareHandler {
	return &ShareHandler{svc: svc}
}

// Create handles POST /api/v1/contents/:id/shares.
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	contentID, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req CreateShareRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	sh, err := h.svc.Share(c.Request.Context(), userID, contentID, req.RecipientID, req.Message)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, sh)
}

// Resolve handles GET /api/v1/shares/:token.
func (h *ShareHandler) Resolve(c *gin.Context) {
	sh, content, err := h.svc.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, ResolveResponse{Share: sh, Content: content})
}
