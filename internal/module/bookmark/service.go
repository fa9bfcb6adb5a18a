package bookmark

import (
	"context"
	"errors"
	"strconv"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pager"
	"github.com/simp-lee/portal/internal/pkg"
	"github.com/simp-lee/portal/internal/rating"
)

type bookmarkService struct {
	bookmarks domain.BookmarkRepository
	contents  domain.ContentRepository
	guard     rating.Guard
}

// NewService creates a BookmarkService.
func NewService(bookmarks domain.BookmarkRepository, contents domain.ContentRepository) domain.BookmarkService {
	return &bookmarkService{bookmarks: bookmarks, contents: contents}
}

// Toggle saves contentID for userID, or removes it when already saved.
// It reports whether the content is bookmarked afterwards. A second toggle of
// the same bookmark while one is in flight fails with CodeConflict.
func (s *bookmarkService) Toggle(ctx context.Context, userID, contentID uint) (bool, error) {
	if _, err := s.contents.GetByID(ctx, contentID); err != nil {
		return false, err
	}

	key := strconv.FormatUint(uint64(contentID), 10) + ":" + strconv.FormatUint(uint64(userID), 10)
	release, err := s.guard.Acquire(key)
	if err != nil {
		if errors.Is(err, rating.ErrBusy) {
			return false, domain.NewAppError(domain.CodeConflict, "a bookmark change for this content is already in progress", err)
		}
		return false, err
	}
	defer release()

	exists, err := s.bookmarks.Exists(ctx, userID, contentID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.bookmarks.Delete(ctx, userID, contentID); err != nil && !domain.IsNotFound(err) {
			return false, err
		}
		return false, nil
	}

	err = s.bookmarks.Create(ctx, &domain.Bookmark{UserID: userID, ContentID: contentID})
	if err != nil && !domain.IsAlreadyExists(err) {
		return false, err
	}
	return true, nil
}

// List returns one page of userID's bookmarks, newest first. Pages past the
// end are clamped to the last page.
func (s *bookmarkService) List(ctx context.Context, userID uint, page, pageSize int) (*domain.PageResult[domain.Bookmark], error) {
	all, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := pager.New(pager.NewSlice(all...), pageSize)
	defer p.Close()
	return pkg.PageOf(p, page), nil
}
