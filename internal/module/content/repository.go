package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

var (
	collectionSortFields   = []string{"id", "name", "created_at"}
	collectionFilterFields = []string{"name", "owner_id"}

	contentSortFields   = []string{"id", "title", "kind", "created_at", "updated_at"}
	contentFilterFields = []string{"collection_id", "author_id", "kind", "title"}
)

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a CollectionRepository backed by GORM.
func NewCollectionRepository(db *gorm.DB) domain.CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *collectionRepository) GetByID(ctx context.Context, id uint) (*domain.Collection, error) {
	var c domain.Collection
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &c, nil
}

func (r *collectionRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Collection], error) {
	return pkg.FindPage[domain.Collection](r.db.WithContext(ctx), req, collectionFilterFields, collectionSortFields)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a ContentRepository backed by GORM.
func NewContentRepository(db *gorm.DB) domain.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, c *domain.Content) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*domain.Content, error) {
	var c domain.Content
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &c, nil
}

func (r *contentRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Content], error) {
	return pkg.FindPage[domain.Content](r.db.WithContext(ctx), req, contentFilterFields, contentSortFields)
}

// Delete removes a content together with its votes, bookmarks, comments and
// shares.
func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return pkg.MapDBError(pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, dep := range []any{&domain.Vote{}, &domain.Bookmark{}, &domain.Comment{}, &domain.Share{}} {
			if err := tx.Where("content_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&domain.Content{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	}))
}
