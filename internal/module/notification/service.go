package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/simp-lee/portal/internal/domain"
)

const maxTitleLength = 200

type notificationService struct {
	repo domain.NotificationRepository
	now  func() time.Time
}

// NewService creates a NotificationService. It also serves as the
// domain.Notifier for other modules.
func NewService(repo domain.NotificationRepository) domain.NotificationService {
	return &notificationService{repo: repo, now: time.Now}
}

// Notify stores n in its recipient's inbox. Overlong titles are truncated.
func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if n.UserID == 0 {
		return domain.NewAppError(domain.CodeValidation, "notification recipient is required", nil)
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return domain.NewAppError(domain.CodeValidation, "notification title is required", nil)
	}
	if utf8.RuneCountInString(n.Title) > maxTitleLength {
		n.Title = string([]rune(n.Title)[:maxTitleLength-1]) + "…"
	}
	n.ID = 0
	n.ReadAt = nil

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	slog.DebugContext(ctx, "notification delivered",
		slog.Uint64("recipient", uint64(n.UserID)),
		slog.String("kind", n.Kind),
	)
	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint, unreadOnly bool, req domain.PageRequest) (*domain.PageResult[domain.Notification], error) {
	return s.repo.List(ctx, userID, unreadOnly, req)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.repo.MarkRead(ctx, userID, id, s.now())
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}
