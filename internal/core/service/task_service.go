package service

import (
	"context"
	"time"

	"github.com/nexaboard/nexaboard/internal/api/metrics"
	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

type taskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository) ports.TaskService {
	return &taskService{tasks: tasks, users: users}
}

func (s *taskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidTaskStatus(status) || !domain.ValidTaskPriority(priority) {
		return nil, domain.ErrInvalidTask
	}

	task := &domain.Task{
		ProjectID:    input.ProjectID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		AssigneeID:   input.AssigneeID,
		AssigneeName: s.resolveAssignee(ctx, input.AssigneeID),
		DueDate:      input.DueDate,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	metrics.TasksCreatedTotal.WithLabelValues(string(priority)).Inc()
	return created, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, domain.ErrInvalidTask
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidTaskPriority(*input.Priority) {
			return nil, domain.ErrInvalidTask
		}
		task.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
		task.AssigneeName = s.resolveAssignee(ctx, *input.AssigneeID)
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}

	return s.tasks.Update(ctx, task)
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !domain.ValidTaskStatus(status) {
		return nil, domain.ErrInvalidTask
	}
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	return s.tasks.Update(ctx, task)
}

func (s *taskService) ListProjectTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.FindByProject(ctx, projectID)
}

func (s *taskService) ListUserTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.tasks.FindByAssignee(ctx, userID)
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// resolveAssignee denormalizes the assignee display name, falling back
// to "Unassigned" for an empty or unknown id.
func (s *taskService) resolveAssignee(ctx context.Context, assigneeID string) string {
	if assigneeID == "" {
		return domain.UnassignedName
	}
	user, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return domain.UnassignedName
	}
	return user.Name
}
