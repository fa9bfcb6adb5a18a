package comment

// CreateCommentRequest is the body of POST /contents/:id/comments.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
