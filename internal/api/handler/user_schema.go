package handler

import (
	"time"

	"github.com/pingado/messaging-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=4"`
}

// updateUserRequest carries the mutable profile fields; empty fields are left
// untouched.
type updateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=4,max=20"`
	Password string `json:"password" validate:"omitempty,min=4"`
}

// userResponse deliberately omits the password hash; it never leaves the
// service.
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
