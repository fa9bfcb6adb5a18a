package rating

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
	"github.com/simp-lee/portal/internal/rating"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRepository creates a RatingRepository backed by GORM.
func NewRepository(db *gorm.DB) domain.RatingRepository {
	return &ratingRepository{db: db}
}

// Histogram counts the votes of a content per star value.
func (r *ratingRepository) Histogram(ctx context.Context, contentID uint) (rating.Histogram, error) {
	var rows []struct {
		Stars int
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Vote{}).
		Select("stars, COUNT(*) AS count").
		Where("content_id = ?", contentID).
		Group("stars").
		Scan(&rows).Error
	if err != nil {
		return rating.Histogram{}, pkg.MapDBError(err)
	}

	var h rating.Histogram
	for _, row := range rows {
		if rating.Valid(row.Stars) {
			h[row.Stars-1] = row.Count
		}
	}
	return h, nil
}

func (r *ratingRepository) UserVote(ctx context.Context, contentID, userID uint) (int, error) {
	var v domain.Vote
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND user_id = ?", contentID, userID).
		Limit(1).Find(&v).Error
	if err != nil {
		return 0, pkg.MapDBError(err)
	}
	return v.Stars, nil
}

// Upsert inserts the vote or replaces the stars of an existing one.
func (r *ratingRepository) Upsert(ctx context.Context, contentID, userID uint, stars int) error {
	v := domain.Vote{ContentID: contentID, UserID: userID, Stars: stars}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"stars": stars, "updated_at": time.Now()}),
	}).Create(&v).Error
	return pkg.MapDBError(err)
}

func (r *ratingRepository) Delete(ctx context.Context, contentID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("content_id = ? AND user_id = ?", contentID, userID).
		Delete(&domain.Vote{})
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ratingRepository) Transaction(ctx context.Context, fn func(repo domain.RatingRepository) error) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&ratingRepository{db: tx})
	})
}
