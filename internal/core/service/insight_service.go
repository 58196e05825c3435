package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// Point weights for the leaderboard. Pure arithmetic over task counts;
// the numbers exist to make the page render, nothing more.
const (
	pointsDone       = 10
	pointsInReview   = 5
	pointsInProgress = 2
	pointsPerLevel   = 100
)

const deadlineWarning = 7 * 24 * time.Hour

type insightService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
}

// NewInsightService returns an InsightService implementation.
func NewInsightService(projects ports.ProjectRepository, tasks ports.TaskRepository, users ports.UserRepository) ports.InsightService {
	return &insightService{projects: projects, tasks: tasks, users: users}
}

func (s *insightService) GetInsights(ctx context.Context) (*ports.Insights, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	done := 0
	tasksByProject := make(map[string]int)
	for _, t := range tasks {
		tasksByProject[t.ProjectID]++
		if t.Status == domain.TaskDone {
			done++
		}
	}

	score := 0
	if len(tasks) > 0 {
		score = done * 100 / len(tasks)
	}

	now := time.Now().UTC()
	var risks []ports.ProjectRisk
	for _, p := range projects {
		switch {
		case p.Overdue(now):
			risks = append(risks, ports.ProjectRisk{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Risk:        "Deadline passed",
				Severity:    "high",
			})
		case p.Status != domain.ProjectCompleted && !p.Deadline.IsZero() &&
			p.Deadline.Sub(now) < deadlineWarning && p.TotalProgress < 50:
			risks = append(risks, ports.ProjectRisk{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Risk:        "Potential delay on deadline",
				Severity:    "medium",
			})
		case tasksByProject[p.ID] == 0 && p.Status != domain.ProjectCompleted:
			risks = append(risks, ports.ProjectRisk{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Risk:        "No tasks planned",
				Severity:    "low",
			})
		}
	}

	return &ports.Insights{
		ProductivityScore: score,
		TasksDone:         done,
		TasksTotal:        len(tasks),
		Risks:             risks,
		Recommendations:   recommendations(score, risks),
	}, nil
}

func recommendations(score int, risks []ports.ProjectRisk) []string {
	var recs []string
	for _, r := range risks {
		switch r.Risk {
		case "Deadline passed":
			recs = append(recs, "Review planning for "+r.ProjectName)
		case "Potential delay on deadline":
			recs = append(recs, "Re-prioritize open tasks on "+r.ProjectName)
		case "No tasks planned":
			recs = append(recs, "Break "+r.ProjectName+" down into tasks")
		}
	}
	if score < 50 {
		recs = append(recs, "Close out in-review tasks before starting new work")
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep the current pace, everything looks on track")
	}
	return recs
}

func (s *insightService) GetLeaderboard(ctx context.Context) ([]ports.LeaderboardEntry, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	type tally struct {
		done, review, inProgress int
	}
	byUser := make(map[string]*tally)
	for _, t := range tasks {
		if t.AssigneeID == "" {
			continue
		}
		entry, ok := byUser[t.AssigneeID]
		if !ok {
			entry = &tally{}
			byUser[t.AssigneeID] = entry
		}
		switch t.Status {
		case domain.TaskDone:
			entry.done++
		case domain.TaskInReview:
			entry.review++
		case domain.TaskInProgress:
			entry.inProgress++
		}
	}

	board := make([]ports.LeaderboardEntry, 0, len(byUser))
	for userID, t := range byUser {
		points := t.done*pointsDone + t.review*pointsInReview + t.inProgress*pointsInProgress
		name := domain.UnassignedName
		if u, err := s.users.FindByID(ctx, userID); err == nil {
			name = u.Name
		}
		board = append(board, ports.LeaderboardEntry{
			UserID:    userID,
			Name:      name,
			TasksDone: t.done,
			Points:    points,
			Level:     points/pointsPerLevel + 1,
		})
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Points != board[j].Points {
			return board[i].Points > board[j].Points
		}
		return board[i].Name < board[j].Name
	})
	return board, nil
}
