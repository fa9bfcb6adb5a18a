package domain

import (
	"context"
	"time"

	"github.com/simp-lee/portal/internal/rating"
)

// Vote is one user's star rating of one content.
type Vote struct {
	ContentID uint      `gorm:"primaryKey;autoIncrement:false" json:"content_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Stars     int       `gorm:"not null" json:"stars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingRepository defines the data access interface for votes.
type RatingRepository interface {
	Histogram(ctx context.Context, contentID uint) (rating.Histogram, error)
	// UserVote returns the user's stars, or 0 when the user has not voted.
	UserVote(ctx context.Context, contentID, userID uint) (int, error)
	Upsert(ctx context.Context, contentID, userID uint, stars int) error
	Delete(ctx context.Context, contentID, userID uint) error
	// Transaction runs fn against a repository bound to a single database
	// transaction. fn's error rolls the transaction back.
	Transaction(ctx context.Context, fn func(repo RatingRepository) error) error
}

// RatingService defines the business logic interface for ratings.
type RatingService interface {
	Get(ctx context.Context, contentID, userID uint) (rating.Aggregate, error)
	Submit(ctx context.Context, contentID, userID uint, stars int) (rating.Aggregate, error)
	Retract(ctx context.Context, contentID, userID uint) (rating.Aggregate, error)
}
