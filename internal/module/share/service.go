package share

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/sanitize"
)

const maxMessageLength = 500

type shareService struct {
	shares   domain.ShareRepository
	contents domain.ContentRepository
	users    domain.UserRepository
	plain    sanitize.Sanitizer
	notifier domain.Notifier
	newToken func() string
}

// NewService creates a ShareService. plain strips markup from share messages;
// notifier may be nil.
func NewService(shares domain.ShareRepository, contents domain.ContentRepository, users domain.UserRepository,
	plain sanitize.Sanitizer, notifier domain.Notifier) domain.ShareService {
	return &shareService{
		shares:   shares,
		contents: contents,
		users:    users,
		plain:    plain,
		notifier: notifier,
		newToken: uuid.NewString,
	}
}

// Share sends contentID from senderID to recipientID and notifies the recipient.
func (s *shareService) Share(ctx context.Context, senderID, contentID, recipientID uint, message string) (*domain.Share, error) {
	if recipientID == senderID {
		return nil, domain.NewAppError(domain.CodeValidation, "cannot share with yourself", nil)
	}
	// Strict sanitizing escapes entities; messages are stored as plain text.
	message = html.UnescapeString(s.plain.Sanitize(message))
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("message must be at most %d characters", maxMessageLength), nil)
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "recipient does not exist", err)
		}
		return nil, err
	}

	sh := &domain.Share{
		Token:       s.newToken(),
		ContentID:   content.ID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
	}
	if err := s.shares.Create(ctx, sh); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		n := &domain.Notification{
			UserID: recipientID,
			Kind:   domain.NotifyShare,
			Title:  s.senderName(ctx, senderID) + " shared " + content.Title,
			Link:   "/shares/" + sh.Token,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			slog.WarnContext(ctx, "share notification failed",
				slog.String("token", sh.Token),
				slog.Any("error", err),
			)
		}
	}
	return sh, nil
}

// Resolve returns the share for token and the content it points to. Anyone
// holding the token may resolve it.
func (s *shareService) Resolve(ctx context.Context, token string) (*domain.Share, *domain.Content, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil, domain.ErrNotFound
	}
	sh, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.contents.GetByID(ctx, sh.ContentID)
	if err != nil {
		return nil, nil, err
	}
	return sh, content, nil
}

func (s *shareService) senderName(ctx context.Context, id uint) string {
	if u, err := s.users.GetByID(ctx, id); err == nil && u.Name != "" {
		return u.Name
	}
	return "Someone"
}
