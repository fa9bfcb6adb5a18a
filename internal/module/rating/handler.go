package rating

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/middleware"
	"github.com/simp-lee/portal/internal/pkg"
	"github.com/simp-lee/portal/internal/rating"
)

// RatingHandler handles REST API requests for content ratings.
type RatingHandler struct {
	svc domain.RatingService
}

// NewHandler creates a new RatingHandler with the given service.
func NewHandler(svc domain.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Get handles GET /api/v1/contents/:id/rating.
func (h *RatingHandler) Get(c *gin.Context) {
	contentID, userID, ok := target(c)
	if !ok {
		return
	}

	agg, err := h.svc.Get(c.Request.Context(), contentID, userID)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, toResponse(contentID, agg))
}

// Submit handles PUT /api/v1/contents/:id/rating.
func (h *RatingHandler) Submit(c *gin.Context) {
	contentID, userID, ok := target(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	agg, err := h.svc.Submit(c.Request.Context(), contentID, userID, req.Stars)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, toResponse(contentID, agg))
}

// Retract handles DELETE /api/v1/contents/:id/rating.
func (h *RatingHandler) Retract(c *gin.Context) {
	contentID, userID, ok := target(c)
	if !ok {
		return
	}

	agg, err := h.svc.Retract(c.Request.Context(), contentID, userID)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, toResponse(contentID, agg))
}

// target resolves the content ID from the path and the caller. It writes the
// error response itself and reports false on failure.
func target(c *gin.Context) (contentID, userID uint, ok bool) {
	userID, ok = middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return 0, 0, false
	}
	contentID, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return 0, 0, false
	}
	return contentID, userID, true
}

func toResponse(contentID uint, a rating.Aggregate) AggregateResponse {
	return AggregateResponse{
		ContentID: contentID,
		Histogram: a.Histogram,
		Total:     a.Total,
		Mean:      a.RoundedMean(2),
		UserVote:  a.UserVote,
	}
}
