package domain

import (
	"errors"
	"time"
)

var ErrUnauthorized = errors.New("not authorized")
var ErrForbidden = errors.New("cannot perform this action")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrPictureTooSmall = errors.New("file too small")

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Picture      string    `json:"picture"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
