package domain

import (
	"context"
	"strings"
)

// Display preferences.
const (
	DefaultLocale = "en"
	ThemeLight    = "light"
	ThemeDark     = "dark"
	ThemeSystem   = "system"
)

// User represents a portal user.
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Locale       string `gorm:"size:16;not null;default:en" json:"locale"`
	Theme        string `gorm:"size:16;not null;default:light" json:"theme"`
}

// rtlLanguages lists the base languages written right to left.
var rtlLanguages = map[string]bool{
	"ar": true,
	"dv": true,
	"fa": true,
	"he": true,
	"ku": true,
	"ps": true,
	"sd": true,
	"ug": true,
	"ur": true,
	"yi": true,
}

// IsRTL reports whether the locale's base language is written right to left.
// Both "ar-EG" and "ar_EG" forms are accepted.
func IsRTL(locale string) bool {
	base := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	return rtlLanguages[base]
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, req PageRequest) (*PageResult[User], error)
	Update(ctx context.Context, user *User) error
}

// UserService defines the business logic interface for users.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, req PageRequest) (*PageResult[User], error)
	UpdateProfile(ctx context.Context, id uint, name string) (*User, error)
	UpdatePreferences(ctx context.Context, id uint, locale, theme string) (*User, error)
}
