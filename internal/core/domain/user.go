package domain

import (
	"errors"
	"time"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an authenticated actor in the system.
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Role         identity.Role `json:"role"`
	Avatar       string        `json:"avatar,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Identity strips the persistence-only fields for API responses and
// token claims.
func (u *User) Identity() *identity.Identity {
	return &identity.Identity{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}
