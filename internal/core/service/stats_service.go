package service

import (
	"context"
	"fmt"

	"github.com/nexaboard/nexaboard/internal/core/ports"
)

type statsService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	messages ports.MessageRepository
}

// NewStatsService returns a StatsService implementation.
func NewStatsService(projects ports.ProjectRepository, users ports.UserRepository, messages ports.MessageRepository) ports.StatsService {
	return &statsService{projects: projects, users: users, messages: messages}
}

func (s *statsService) GetStats(ctx context.Context) (*ports.Stats, error) {
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	members, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	return &ports.Stats{Projects: projects, Members: members, Messages: messages}, nil
}
