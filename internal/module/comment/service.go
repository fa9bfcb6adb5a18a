package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/sanitize"
)

const maxBodyLength = 5000

type commentService struct {
	comments  domain.CommentRepository
	contents  domain.ContentRepository
	sanitizer sanitize.Sanitizer
	notifier  domain.Notifier
}

// NewService creates a CommentService. notifier may be nil.
func NewService(comments domain.CommentRepository, contents domain.ContentRepository, sanitizer sanitize.Sanitizer, notifier domain.Notifier) domain.CommentService {
	return &commentService{comments: comments, contents: contents, sanitizer: sanitizer, notifier: notifier}
}

// Create stores a sanitized comment and tells the content's author about it,
// unless the author is commenting on their own content.
func (s *commentService) Create(ctx context.Context, authorID, contentID uint, body string) (*domain.Comment, error) {
	if utf8.RuneCountInString(body) > maxBodyLength {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("comment must be at most %d characters", maxBodyLength), nil)
	}
	clean := s.sanitizer.Sanitize(body)
	if strings.TrimSpace(clean) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "comment must not be empty", nil)
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	c := &domain.Comment{ContentID: contentID, AuthorID: authorID, Body: clean}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.notifier != nil && content.AuthorID != authorID {
		n := &domain.Notification{
			UserID: content.AuthorID,
			Kind:   domain.NotifyComment,
			Title:  "New comment on " + content.Title,
			Link:   fmt.Sprintf("/contents/%d#comment-%d", content.ID, c.ID),
		}
		// Delivery is best effort once the comment is stored.
		if err := s.notifier.Notify(ctx, n); err != nil {
			slog.WarnContext(ctx, "comment notification failed",
				slog.Uint64("comment_id", uint64(c.ID)),
				slog.Any("error", err),
			)
		}
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, contentID uint, req domain.PageRequest) (*domain.PageResult[domain.Comment], error) {
	if _, err := s.contents.GetByID(ctx, contentID); err != nil {
		return nil, err
	}
	return s.comments.ListByContent(ctx, contentID, req)
}

// Delete removes a comment. Only its author may do so.
func (s *commentService) Delete(ctx context.Context, actorID, id uint) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != actorID {
		return domain.NewAppError(domain.CodeForbidden, "only the author can delete this comment", nil)
	}
	return s.comments.Delete(ctx, id)
}
