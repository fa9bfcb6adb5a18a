package domain

import "context"

// Comment is a user remark on a content. Body holds sanitized HTML.
type Comment struct {
	BaseModel
	ContentID uint   `gorm:"index;not null" json:"content_id"`
	AuthorID  uint   `gorm:"index;not null" json:"author_id"`
	Body      string `gorm:"type:text;not null" json:"body"`
}

// CommentRepository defines the data access interface for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	ListByContent(ctx context.Context, contentID uint, req PageRequest) (*PageResult[Comment], error)
	Delete(ctx context.Context, id uint) error
}

// CommentService defines the business logic interface for comments.
type CommentService interface {
	Create(ctx context.Context, authorID, contentID uint, body string) (*Comment, error)
	List(ctx context.Context, contentID uint, req PageRequest) (*PageResult[Comment], error)
	Delete(ctx context.Context, actorID, id uint) error
}
