package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// GoalStatus is derived from the progress percentage
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// GoalStatusForProgress maps 0 to not_started, 100 to completed and anything between to in_progress
func GoalStatusForProgress(progress int) GoalStatus {
	switch {
	case progress >= 100:
		return GoalCompleted
	case progress <= 0:
		return GoalNotStarted
	default:
		return GoalInProgress
	}
}

// MentorshipGoal is an objective tracked under a mentorship
type MentorshipGoal struct {
	ID                 string     `json:"id"`
	MentorshipID       string     `json:"mentorshipId"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	TargetDate         *time.Time `json:"targetDate"`
	ProgressPercentage int        `json:"progressPercentage"`
	Status             GoalStatus `json:"status"`
	CreatedBy          string     `json:"createdBy"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// CreateGoalRequest is the payload for creating a goal; TargetDate is YYYY-MM-DD
type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	TargetDate  string `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateGoalProgressRequest is the payload for setting goal progress
type UpdateGoalProgressRequest struct {
	ProgressPercentage *int `json:"progressPercentage" binding:"required,min=0,max=100"`
}

// GoalsResponse is the response for listing goals of a mentorship
type GoalsResponse struct {
	Goals []MentorshipGoal `json:"goals"`
	Total int              `json:"total"`
}

// ScanGoal scans a single PostgreSQL row into a MentorshipGoal.
// Expected columns: id, mentorship_id, title, description, target_date,
// progress_percentage, status, created_by, created_at, updated_at
func ScanGoal(row pgx.Row) (*MentorshipGoal, error) {
	var g MentorshipGoal
	err := row.Scan(
		&g.ID,
		&g.MentorshipID,
		&g.Title,
		&g.Description,
		&g.TargetDate,
		&g.ProgressPercentage,
		&g.Status,
		&g.CreatedBy,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
