package user

import (
	"time"

	"github.com/simp-lee/portal/internal/domain"
)

// UpdateProfileRequest represents the input for changing the caller's profile.
type UpdateProfileRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=2,max=100"`
}

// UpdatePreferencesRequest represents the input for changing display preferences.
// At least one field must be set.
type UpdatePreferencesRequest struct {
	Locale string `json:"locale" form:"locale" binding:"omitempty,min=2,max=16"`
	Theme  string `json:"theme" form:"theme" binding:"omitempty,oneof=light dark system"`
}

// UserResponse is the public view of a user. RTL is derived from Locale.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Locale    string    `json:"locale"`
	Theme     string    `json:"theme"`
	RTL       bool      `json:"rtl"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Locale:    u.Locale,
		Theme:     u.Theme,
		RTL:       domain.IsRTL(u.Locale),
		CreatedAt: u.CreatedAt,
	}
}
