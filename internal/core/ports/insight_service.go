package ports

import "context"

// Stats is the landing-page counter row.
type Stats struct {
	Projects int64 `json:"projects"`
	Members  int64 `json:"members"`
	Messages int64 `json:"messages"`
}

// StatsService aggregates collection counts for the dashboard.
type StatsService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

// ProjectRisk flags a project that looks behind schedule or under-tested.
type ProjectRisk struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Risk        string `json:"risk"`
	Severity    string `json:"severity"` // low, medium, high
}

// Insights is the "AI report": a productivity score with supporting
// detail, computed from plain counts over tasks and projects.
type Insights struct {
	ProductivityScore int           `json:"productivity_score"` // 0-100
	TasksDone         int           `json:"tasks_done"`
	TasksTotal        int           `json:"tasks_total"`
	Risks             []ProjectRisk `json:"risks"`
	Recommendations   []string      `json:"recommendations"`
}

// LeaderboardEntry is one gamification row. Points are arithmetic over
// completed task counts, not a measure of anything real.
type LeaderboardEntry struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	TasksDone int    `json:"tasks_done"`
	Points    int    `json:"points"`
	Level     int    `json:"level"`
}

// InsightService computes the analytics and gamification views.
type InsightService interface {
	GetInsights(ctx context.Context) (*Insights, error)
	GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}
