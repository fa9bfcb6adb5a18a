package domain

import (
	"context"
	"time"
)

// Bookmark records that a user saved a content.
type Bookmark struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ContentID uint      `gorm:"primaryKey;autoIncrement:false" json:"content_id"`
	Content   *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BookmarkRepository defines the data access interface for bookmarks.
type BookmarkRepository interface {
	Exists(ctx context.Context, userID, contentID uint) (bool, error)
	Create(ctx context.Context, b *Bookmark) error
	Delete(ctx context.Context, userID, contentID uint) error
	// ListByUser returns all bookmarks of a user, newest first, with Content loaded.
	ListByUser(ctx context.Context, userID uint) ([]Bookmark, error)
}

// BookmarkService defines the business logic interface for bookmarks.
type BookmarkService interface {
	Toggle(ctx context.Context, userID, contentID uint) (bool, error)
	List(ctx context.Context, userID uint, page, pageSize int) (*PageResult[Bookmark], error)
}
