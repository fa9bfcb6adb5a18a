package domain

import (
	"context"
	"time"
)

// Notification kinds.
const (
	NotifyComment = "comment"
	NotifyShare   = "share"
)

// Notification is a message delivered to one user's inbox.
type Notification struct {
	BaseModel
	UserID uint       `gorm:"index;not null" json:"user_id"`
	Kind   string     `gorm:"size:20;not null" json:"kind"`
	Title  string     `gorm:"size:200;not null" json:"title"`
	Link   string     `gorm:"size:500" json:"link"`
	ReadAt *time.Time `json:"read_at"`
}

// Notifier delivers notifications. Other modules depend on it instead of the
// notification repository.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// NotificationRepository defines the data access interface for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, userID uint, unreadOnly bool, req PageRequest) (*PageResult[Notification], error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint, at time.Time) error
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
}

// NotificationService defines the business logic interface for notifications.
type NotificationService interface {
	Notifier
	List(ctx context.Context, userID uint, unreadOnly bool, req PageRequest) (*PageResult[Notification], error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}
