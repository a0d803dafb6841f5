package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// MentorshipStatus represents the lifecycle state of a mentorship
type MentorshipStatus string

const (
	MentorshipRequested MentorshipStatus = "requested"
	MentorshipActive    MentorshipStatus = "active"
	MentorshipCancelled MentorshipStatus = "cancelled"
	MentorshipCompleted MentorshipStatus = "completed"
)

// OpenMentorshipStatuses block a new request for the same (mentor, mentee) pair
var OpenMentorshipStatuses = []MentorshipStatus{MentorshipRequested, MentorshipActive}

// IsTerminal returns true if no transition may leave the status
func (s MentorshipStatus) IsTerminal() bool {
	return s == MentorshipCancelled || s == MentorshipCompleted
}

// IsOpen returns true for requested and active mentorships
func (s MentorshipStatus) IsOpen() bool {
	return s == MentorshipRequested || s == MentorshipActive
}

// CanTransitionTo checks if a status transition is valid:
// requested -> active | cancelled, active -> completed.
func (s MentorshipStatus) CanTransitionTo(next MentorshipStatus) bool {
	switch s {
	case MentorshipRequested:
		return next == MentorshipActive || next == MentorshipCancelled
	case MentorshipActive:
		return next == MentorshipCompleted
	default:
		return false
	}
}

// Mentorship is one mentor/mentee relationship instance
type Mentorship struct {
	ID             string           `json:"id"`
	MentorID       string           `json:"mentorId"`
	MenteeID       string           `json:"menteeId"`
	AreaOfGuidance string           `json:"areaOfGuidance"`
	Status         MentorshipStatus `json:"status"`
	StartDate      *time.Time       `json:"startDate"` // set on activation
	EndDate        *time.Time       `json:"endDate"`   // set on completion
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// IsParticipant reports whether userID is the mentor or the mentee
func (m *Mentorship) IsParticipant(userID string) bool {
	return userID != "" && (m.MentorID == userID || m.MenteeID == userID)
}

// Counterpart returns the other party of the mentorship, or "" for outsiders
func (m *Mentorship) Counterpart(userID string) string {
	switch userID {
	case m.MentorID:
		return m.MenteeID
	case m.MenteeID:
		return m.MentorID
	default:
		return ""
	}
}

// MentorshipView is a mentorship joined with the public profiles of both parties.
// A profile is nil when the directory has no entry or could not be reached.
type MentorshipView struct {
	Mentorship
	Mentor *PublicProfile `json:"mentor,omitempty"`
	Mentee *PublicProfile `json:"mentee,omitempty"`
}

// RequestMentorshipRequest is the payload for requesting a mentor
type RequestMentorshipRequest struct {
	MentorID       string `json:"mentorId" binding:"required,max=64"`
	AreaOfGuidance string `json:"areaOfGuidance" binding:"max=2000"`
}

// MentorshipsResponse is the response for listing mentorships
type MentorshipsResponse struct {
	Mentorships []MentorshipView `json:"mentorships"`
	Total       int              `json:"total"`
}

// ScanMentorship scans a single PostgreSQL row into a Mentorship.
// Expected columns: id, mentor_id, mentee_id, area_of_guidance, status,
// start_date, end_date, created_at, updated_at
func ScanMentorship(row pgx.Row) (*Mentorship, error) {
	var m Mentorship
	err := row.Scan(
		&m.ID,
		&m.MentorID,
		&m.MenteeID,
		&m.AreaOfGuidance,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
