package share

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

type shareRepository struct {
	db *gorm.DB
}

// NewRepository creates a ShareRepository backed by GORM.
func NewRepository(db *gorm.DB) domain.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, s *domain.Share) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *shareRepository) GetByToken(ctx context.Context, token string) (*domain.Share, error) {
	var s domain.Share
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &s, nil
}
