package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	copy := cloneTask(t)
	r.nextID++
	copy.ID = "t" + strconv.Itoa(r.nextID)
	r.tasks[copy.ID] = cloneTask(copy)
	return copy, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		return cloneTask(t), nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) FindByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) FindByAssignee(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.AssigneeID == userID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) FindAll(_ context.Context) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if _, ok := r.tasks[t.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), newStubUserRepo())

	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		ProjectID: "p1",
		Title:     "Write docs",
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if task.Status != domain.TaskTodo {
		t.Fatalf("expected default status todo, got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", task.Priority)
	}
	if task.AssigneeName != domain.UnassignedName {
		t.Fatalf("expected %q, got %q", domain.UnassignedName, task.AssigneeName)
	}
}

func TestTaskService_CreateTask_ResolvesAssignee(t *testing.T) {
	users := newStubUserRepo()
	svc := NewTaskService(newStubTaskRepo(), users)
	assignee := seedUser(t, users, "Ivan")

	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		ProjectID:  "p1",
		Title:      "Review PR",
		AssigneeID: assignee.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if task.AssigneeName != "Ivan" {
		t.Fatalf("assignee name not denormalized, got %q", task.AssigneeName)
	}
}

func TestTaskService_CreateTask_InvalidStatus(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), newStubUserRepo())

	_, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		ProjectID: "p1",
		Title:     "Broken",
		Status:    "archived",
	})
	if !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got %v", err)
	}
}

func TestTaskService_UpdateTask_Partial(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, newStubUserRepo())

	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		ProjectID:   "p1",
		Title:       "Original",
		Description: "keep me",
		Priority:    domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	title := "Renamed"
	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.UpdateTaskInput{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated, got %q", updated.Title)
	}
	if updated.Description != "keep me" || updated.Priority != domain.PriorityHigh {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTaskService_UpdateTask_Unassign(t *testing.T) {
	users := newStubUserRepo()
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, users)
	assignee := seedUser(t, users, "Judy")

	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		ProjectID:  "p1",
		Title:      "Handed off",
		AssigneeID: assignee.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	empty := ""
	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.UpdateTaskInput{AssigneeID: &empty})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}
	if updated.AssigneeID != "" || updated.AssigneeName != domain.UnassignedName {
		t.Fatalf("expected unassigned task, got %+v", updated)
	}
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, newStubUserRepo())

	task, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{ProjectID: "p1", Title: "Drag me"})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	moved, err := svc.UpdateTaskStatus(context.Background(), task.ID, domain.TaskDone)
	if err != nil {
		t.Fatalf("UpdateTaskStatus returned error: %v", err)
	}
	if moved.Status != domain.TaskDone {
		t.Fatalf("status not updated, got %q", moved.Status)
	}

	if _, err := svc.UpdateTaskStatus(context.Background(), task.ID, "shipped"); !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got %v", err)
	}
	if _, err := svc.UpdateTaskStatus(context.Background(), "missing", domain.TaskDone); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
