package ports

import (
	"context"
	"time"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. Status and priority
// fall back to todo/medium when empty.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssigneeID  string
	DueDate     time.Time
}

// UpdateTaskInput applies a partial update; nil pointers leave the
// field unchanged. AssigneeID set to the empty string unassigns.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	ListProjectTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	FindByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	FindAll(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
