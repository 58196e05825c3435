package ports

import (
	"context"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/pkg/identity"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByRoles(ctx context.Context, roles ...identity.Role) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// UserService exposes the team directory.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// ListLeads returns managers and admins, the users eligible to own
	// a project.
	ListLeads(ctx context.Context) ([]*domain.User, error)
}
