package share

import "github.com/simp-lee/portal/internal/domain"

// CreateShareRequest is the body of POST /contents/:id/shares.
type CreateShareRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Message     string `json:"message"`
}

// ResolveResponse is a resolved share with its content.
type ResolveResponse struct {
	Share   *domain.Share   `json:"share"`
	Content *domain.Content `json:"content"`
}
