package assist

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

// AssistHandler handles REST API requests for the text tools.
type AssistHandler struct {
	svc *Service
}

// NewHandler creates a new AssistHandler with the given service.
func NewHandler(svc *Service) *AssistHandler {
	return &AssistHandler{svc: svc}
}

// Summarize handles POST /api/v1/assist/summarize.
func (h *AssistHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	summary, err := h.svc.Summarize(req.Text, req.Sentences)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, SummaryResponse{Summary: summary})
}

// Sentiment handles POST /api/v1/assist/sentiment.
func (h *AssistHandler) Sentiment(c *gin.Context) {
	var req SentimentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	result, err := h.svc.Sentiment(req.Text)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, result)
}

// ContentSummary handles GET /api/v1/contents/:id/summary. The optional
// "sentences" query parameter overrides the default length.
func (h *AssistHandler) ContentSummary(c *gin.Context) {
	id, err := pkg.ParamID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var sentences int
	if raw := c.Query("sentences"); raw != "" {
		sentences, err = strconv.Atoi(raw)
		if err != nil {
			pkg.Error(c, domain.NewAppError(domain.CodeValidation, "sentences must be a number", err))
			return
		}
	}

	content, summary, err := h.svc.ContentSummary(c.Request.Context(), id, sentences)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, SummaryResponse{ContentID: content.ID, Title: content.Title, Summary: summary})
}
