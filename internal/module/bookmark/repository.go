package bookmark

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

type bookmarkRepository struct {
	db *gorm.DB
}

// NewRepository creates a BookmarkRepository backed by GORM.
func NewRepository(db *gorm.DB) domain.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, contentID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Bookmark{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&n).Error
	if err != nil {
		return false, pkg.MapDBError(err)
	}
	return n > 0, nil
}

func (r *bookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(b).Error)
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, contentID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&domain.Bookmark{})
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Bookmark, error) {
	var items []domain.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("content_id DESC").
		Find(&items).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return items, nil
}
