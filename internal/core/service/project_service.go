package service

import (
	"context"
	"time"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

type projectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository) ports.ProjectService {
	return &projectService{projects: projects, users: users}
}

func (s *projectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	manager, err := s.users.FindByID(ctx, input.ManagerID)
	if err != nil {
		return nil, err
	}

	teamIDs := input.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}

	project := &domain.Project{
		Name:          input.Name,
		Description:   input.Description,
		TotalProgress: 0,
		Status:        domain.ProjectInProgress,
		ManagerID:     manager.ID,
		ManagerName:   manager.Name,
		TeamIDs:       teamIDs,
		Deadline:      input.Deadline,
		CreatedAt:     time.Now().UTC(),
	}

	return s.projects.Create(ctx, project)
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.FindAll(ctx)
}

// ListUserProjects merges projects managed by the user with projects
// where the user is on the team, deduplicated by id.
func (s *projectService) ListUserProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	managed, err := s.projects.FindByManager(ctx, userID)
	if err != nil {
		return nil, err
	}
	member, err := s.projects.FindByTeamMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(managed))
	all := make([]*domain.Project, 0, len(managed)+len(member))
	for _, p := range managed {
		seen[p.ID] = struct{}{}
		all = append(all, p)
	}
	for _, p := range member {
		if _, ok := seen[p.ID]; !ok {
			all = append(all, p)
		}
	}
	return all, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
