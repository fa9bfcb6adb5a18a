package comment

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

var (
	allowedFilterFields = []string{"author_id"}
	allowedSortFields   = []string{"id", "created_at"}
)

type commentRepository struct {
	db *gorm.DB
}

// NewRepository creates a CommentRepository backed by GORM.
func NewRepository(db *gorm.DB) domain.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &c, nil
}

func (r *commentRepository) ListByContent(ctx context.Context, contentID uint, req domain.PageRequest) (*domain.PageResult[domain.Comment], error) {
	db := r.db.WithContext(ctx).Where("content_id = ?", contentID)
	return pkg.FindPage[domain.Comment](db, req, allowedFilterFields, allowedSortFields)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
