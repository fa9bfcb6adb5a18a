package user

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/portal/internal/domain"
)

// supportedLocales lists the UI languages the portal ships translations for.
var supportedLocales = map[string]bool{
	"en": true, "de": true, "es": true, "fr": true, "ja": true, "zh": true,
	"ar": true, "fa": true, "he": true, "ur": true,
}

var supportedThemes = map[string]bool{
	domain.ThemeLight:  true,
	domain.ThemeDark:   true,
	domain.ThemeSystem: true,
}

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

// UpdateProfile changes the display name of a user.
func (s *userService) UpdateProfile(ctx context.Context, id uint, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences stores the user's locale and theme. The locale is
// normalized to lowercase with a hyphen region separator ("pt_BR" -> "pt-br")
// and its base language must be supported. An empty value keeps the current one.
func (s *userService) UpdatePreferences(ctx context.Context, id uint, locale, theme string) (*domain.User, error) {
	locale = normalizeLocale(locale)
	theme = strings.ToLower(strings.TrimSpace(theme))

	if locale != "" && !supportedLocales[baseLanguage(locale)] {
		return nil, domain.NewAppError(domain.CodeValidation, "locale is not supported", nil)
	}
	if theme != "" && !supportedThemes[theme] {
		return nil, domain.NewAppError(domain.CodeValidation, "theme must be one of light, dark, system", nil)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if locale != "" {
		user.Locale = locale
	}
	if theme != "" {
		user.Theme = theme
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// validateName checks that name is between 2 and 100 characters.
func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if n < 2 {
		return domain.NewAppError(domain.CodeValidation, "name must be at least 2 characters", nil)
	}
	if n > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}
	return nil
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

func baseLanguage(locale string) string {
	base, _, _ := strings.Cut(locale, "-")
	return base
}
