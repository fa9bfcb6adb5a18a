package bookmark

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
)

// BookmarkHandler handles REST API requests for bookmarks.
type BookmarkHandler struct {
	svc domain.BookmarkService
}

// NewHandler creates a new BookmarkHandler with the given service.
func NewHandler(svc domain.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

// Toggle handles PUT /api/v1/contents/:id/bookmark.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
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

	on, err := h.svc.Toggle(c.Request.Context(), userID, contentID)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, ToggleResponse{Bookmarked: on})
}

// List handles GET /api/v1/bookmarks.
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	req := pkg.ParsePageRequest(c)
	result, err := h.svc.List(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, pkg.MapPage(result, toResponse))
}

func toResponse(b *domain.Bookmark) BookmarkResponse {
	resp := BookmarkResponse{ContentID: b.ContentID, Bookmarked: b.CreatedAt}
	if b.Content != nil {
		resp.Title = b.Content.Title
		resp.Kind = b.Content.Kind
		resp.URL = b.Content.URL
	}
	return resp
}
