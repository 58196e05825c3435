package domain

import (
	"errors"
	"time"
)

// TaskStatus is a kanban column.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskPriority orders tasks within a column.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task field")
)

// ValidTaskStatus reports whether s is one of the kanban columns.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskInReview, TaskDone:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is a known priority.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// UnassignedName is the denormalized assignee name when a task has no
// assignee or the assignee no longer exists.
const UnassignedName = "Unassigned"

// Task belongs to a project and optionally to an assignee. AssigneeName
// is denormalized like Project.ManagerName.
type Task struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"project_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssigneeID   string       `json:"assignee_id,omitempty"`
	AssigneeName string       `json:"assignee_name"`
	DueDate      time.Time    `json:"due_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
