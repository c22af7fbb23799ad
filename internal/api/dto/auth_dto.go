package dto

import (
	"time"

	"github.com/spec-kit/career-compass/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Role        string `json:"role" validate:"omitempty,oneof=job_seeker admin"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CSRFTokenResponse carries a freshly issued anti-forgery token.
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// UserResponse is the sanitized account record; it never carries the
// password hash.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse is the success body for login.
type LoginResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SanitizeUser maps a domain user onto its public shape.
func SanitizeUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}
