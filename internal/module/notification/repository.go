package notification

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pkg"
)

var (
	allowedFilterFields = []string{"kind"}
	allowedSortFields   = []string{"id", "created_at"}
)

type notificationRepository struct {
	db *gorm.DB
}

// NewRepository creates a NotificationRepository backed by GORM.
func NewRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return pkg.MapDBError(r.db.WithContext(ctx).Create(n).Error)
}

func (r *notificationRepository) List(ctx context.Context, userID uint, unreadOnly bool, req domain.PageRequest) (*domain.PageResult[domain.Notification], error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("read_at IS NULL")
	}
	return pkg.FindPage[domain.Notification](db, req, allowedFilterFields, allowedSortFields)
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&n).Error
	return n, pkg.MapDBError(err)
}

// MarkRead sets ReadAt on one of userID's notifications. Marking an already
// read notification succeeds and keeps the original timestamp.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uint, at time.Time) error {
	return pkg.MapDBError(pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var n domain.Notification
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
			return err
		}
		if n.ReadAt != nil {
			return nil
		}
		return tx.Model(&n).Update("read_at", at).Error
	}))
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, pkg.MapDBError(result.Error)
	}
	return result.RowsAffected, nil
}
