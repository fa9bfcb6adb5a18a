package domain

import "context"

// Share is a content sent from one user to another, addressable by Token.
type Share struct {
	BaseModel
	Token       string `gorm:"size:36;uniqueIndex;not null" json:"token"`
	ContentID   uint   `gorm:"index;not null" json:"content_id"`
	SenderID    uint   `gorm:"not null" json:"sender_id"`
	RecipientID uint   `gorm:"index;not null" json:"recipient_id"`
	Message     string `gorm:"size:500" json:"message"`
}

// ShareRepository defines the data access interface for shares.
type ShareRepository interface {
	Create(ctx context.Context, s *Share) error
	GetByToken(ctx context.Context, token string) (*Share, error)
}

// ShareService defines the business logic interface for shares.
type ShareService interface {
	Share(ctx context.Context, senderID, contentID, recipientID uint, message string) (*Share, error)
	Resolve(ctx context.Context, token string) (*Share, *Content, error)
}
