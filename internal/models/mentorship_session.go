package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// SessionStatus represents the status of a scheduled mentorship meeting
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

const (
	DefaultSessionDurationMinutes = 60
	MaxSessionDurationMinutes     = 24 * 60
)

// MentorshipSession is a meeting scheduled under an active mentorship
type MentorshipSession struct {
	ID              string        `json:"id"`
	MentorshipID    string        `json:"mentorshipId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ScheduledDate   time.Time     `json:"scheduledDate"`
	DurationMinutes int           `json:"durationMinutes"`
	MeetingLink     *string       `json:"meetingLink"`
	Status          SessionStatus `json:"status"`
	CreatedBy       string        `json:"createdBy"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ScheduleSessionRequest is the payload for scheduling a session
type ScheduleSessionRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Description     string    `json:"description" binding:"max=5000"`
	ScheduledDate   time.Time `json:"scheduledDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"omitempty,min=1,max=1440"`
	MeetingLink     string    `json:"meetingLink" binding:"omitempty,url,max=500"`
}

// SessionsResponse is the response for listing sessions of a mentorship
type SessionsResponse struct {
	Sessions []MentorshipSession `json:"sessions"`
	Total    int                 `json:"total"`
}

// ScanSession scans a single PostgreSQL row into a MentorshipSession.
// Expected columns: id, mentorship_id, title, description, scheduled_date,
// duration_minutes, meeting_link, status, created_by, created_at, updated_at
func ScanSession(row pgx.Row) (*MentorshipSession, error) {
	var s MentorshipSession
	err := row.Scan(
		&s.ID,
		&s.MentorshipID,
		&s.Title,
		&s.Description,
		&s.ScheduledDate,
		&s.DurationMinutes,
		&s.MeetingLink,
		&s.Status,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
