package content

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/sanitize"
)

type contentService struct {
	collections domain.CollectionRepository
	contents    domain.ContentRepository
	sanitizer   sanitize.Sanitizer
}

// NewService creates a ContentService. Content bodies pass through sanitizer
// before they are stored.
func NewService(collections domain.CollectionRepository, contents domain.ContentRepository, sanitizer sanitize.Sanitizer) domain.ContentService {
	return &contentService{collections: collections, contents: contents, sanitizer: sanitizer}
}

func (s *contentService) CreateCollection(ctx context.Context, ownerID uint, name, description string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(name); n == 0 || n > 120 {
		return nil, domain.NewAppError(domain.CodeValidation, "name must be between 1 and 120 characters", nil)
	}
	if utf8.RuneCountInString(description) > 500 {
		return nil, domain.NewAppError(domain.CodeValidation, "description must be at most 500 characters", nil)
	}

	c := &domain.Collection{Name: name, Description: description, OwnerID: ownerID}
	if err := s.collections.Create(ctx, c); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "collection name is taken", err)
		}
		return nil, err
	}
	return c, nil
}

func (s *contentService) GetCollection(ctx context.Context, id uint) (*domain.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

func (s *contentService) ListCollections(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Collection], error) {
	return s.collections.List(ctx, req)
}

// CreateContent validates in, sanitizes the body and stores the content in
// an existing collection. Links need an absolute http(s) URL.
func (s *contentService) CreateContent(ctx context.Context, authorID uint, in domain.ContentInput) (*domain.Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if in.Kind == "" {
		in.Kind = domain.KindDocument
	}

	if n := utf8.RuneCountInString(in.Title); n == 0 || n > 200 {
		return nil, domain.NewAppError(domain.CodeValidation, "title must be between 1 and 200 characters", nil)
	}
	switch in.Kind {
	case domain.KindDocument, domain.KindAnnouncement:
	case domain.KindLink:
		if !validLink(in.URL) {
			return nil, domain.NewAppError(domain.CodeValidation, "link content needs an absolute http or https url", nil)
		}
	default:
		return nil, domain.NewAppError(domain.CodeValidation, "kind must be one of document, link, announcement", nil)
	}

	if _, err := s.collections.GetByID(ctx, in.CollectionID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "collection does not exist", err)
		}
		return nil, err
	}

	c := &domain.Content{
		CollectionID: in.CollectionID,
		AuthorID:     authorID,
		Kind:         in.Kind,
		Title:        in.Title,
		Body:         s.sanitizer.Sanitize(in.Body),
		URL:          in.URL,
	}
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contentService) GetContent(ctx context.Context, id uint) (*domain.Content, error) {
	return s.contents.GetByID(ctx, id)
}

func (s *contentService) ListContents(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Content], error) {
	return s.contents.List(ctx, req)
}

// DeleteContent removes a content. Only its author may delete it.
func (s *contentService) DeleteContent(ctx context.Context, actorID, id uint) error {
	c, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != actorID {
		return domain.NewAppError(domain.CodeForbidden, "only the author can delete this content", nil)
	}
	return s.contents.Delete(ctx, id)
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
