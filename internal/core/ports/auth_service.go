package ports

import (
	"context"
	"time"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string // defaults to "member" when empty
}

// AuthService defines registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves the user behind a validated token subject.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	// Logout invalidates the token identified by jti until its expiry.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// TokenRevoker records revoked token ids so a logged-out artifact stops
// working before its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
