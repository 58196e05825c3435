package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectInReview   ProjectStatus = "Review"
	ProjectCompleted  ProjectStatus = "Completed"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is the aggregate a kanban board and its tasks hang off.
// ManagerName is denormalized from the users collection at creation
// time so listings render without a join.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	TotalProgress int           `json:"total_progress"`
	Status        ProjectStatus `json:"status"`
	ManagerID     string        `json:"manager_id"`
	ManagerName   string        `json:"manager_name"`
	TeamIDs       []string      `json:"team_ids"`
	Deadline      time.Time     `json:"deadline"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TeamSize is the number of team members, excluding the manager.
func (p *Project) TeamSize() int {
	return len(p.TeamIDs)
}

// Overdue reports whether the deadline has passed without completion.
func (p *Project) Overdue(now time.Time) bool {
	return p.Status != ProjectCompleted && !p.Deadline.IsZero() && p.Deadline.Before(now)
}
