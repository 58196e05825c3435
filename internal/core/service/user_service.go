package service

import (
	"context"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
	"github.com/nexaboard/nexaboard/pkg/identity"
)

type userService struct {
	users ports.UserRepository
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository) ports.UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *userService) ListLeads(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindByRoles(ctx, identity.RoleManager, identity.RoleAdmin)
}
