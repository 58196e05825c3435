package ports

import (
	"context"
	"time"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

// CreateProjectInput carries the data for a new project. The manager
// must resolve to an existing user; the denormalized name is taken from
// that record.
type CreateProjectInput struct {
	Name        string
	Description string
	ManagerID   string
	TeamIDs     []string
	Deadline    time.Time
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	// ListUserProjects returns projects the user manages or belongs to,
	// deduplicated by id.
	ListUserProjects(ctx context.Context, userID string) ([]*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	FindByManager(ctx context.Context, managerID string) ([]*domain.Project, error)
	FindByTeamMember(ctx context.Context, userID string) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
