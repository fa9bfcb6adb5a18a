package content

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
)

// ContentHandler handles REST API requests for collections and contents.
type ContentHandler struct {
	svc domain.ContentService
}

// NewHandler creates a new ContentHandler with the given service.
func NewHandler(svc domain.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// CreateCollection handles POST /api/v1/collections.
func (h *ContentHandler) CreateCollection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req CreateCollectionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	col, err := h.svc.CreateCollection(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, col)
}

// GetCollection handles GET /api/v1/collections/:id.
func (h *ContentHandler) GetCollection(c *gin.Context) {
	id, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	col, err := h.svc.GetCollection(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, col)
}

// ListCollections handles GET /api/v1/collections.
func (h *ContentHandler) ListCollections(c *gin.Context) {
	result, err := h.svc.ListCollections(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// CreateContent handles POST /api/v1/contents.
func (h *ContentHandler) CreateContent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req CreateContentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	content, err := h.svc.CreateContent(c.Request.Context(), userID, domain.ContentInput{
		CollectionID: req.CollectionID,
		Kind:         req.Kind,
		Title:        req.Title,
		Body:         req.Body,
		URL:          req.URL,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, content)
}

// GetContent handles GET /api/v1/contents/:id.
func (h *ContentHandler) GetContent(c *gin.Context) {
	id, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	content, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, content)
}

// ListContents handles GET /api/v1/contents.
// Supports filters collection_id, author_id, kind, and title__like.
func (h *ContentHandler) ListContents(c *gin.Context) {
	result, err := h.svc.ListContents(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// DeleteContent handles DELETE /api/v1/contents/:id.
func (h *ContentHandler) DeleteContent(c *gin.Context) {
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

	if err := h.svc.DeleteContent(c.Request.Context(), userID, id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
