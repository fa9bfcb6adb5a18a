package comment

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
)

// CommentHandler handles REST API requests for comments.
type CommentHandler struct {
	svc domain.CommentService
}

// NewHandler creates a new CommentHandler with the given service.
func NewHandler(svc domain.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create handles POST /api/v1/contents/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req CreateCommentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), userID, contentID, req.Body)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, comment)
}

// List handles GET /api/v1/contents/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	contentID, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), contentID, pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Delete handles DELETE /api/v1/comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	id, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
