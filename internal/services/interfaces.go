package services

import (
	"context"

	"github.com/alumnihub/alumnihub-api/internal/models"
)

// NotificationSink accepts fire-and-forget notification records
type NotificationSink interface {
	Send(ctx context.Context, n *models.Notification) error
}

// ProfileDirectory resolves the public profile fields shown next to a mentorship
type ProfileDirectory interface {
	GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error)
}

// MentorshipServiceInterface defines the mentorship lifecycle operations
type MentorshipServiceInterface interface {
	RequestMentorship(ctx context.Context, actor models.Actor, req *models.RequestMentorshipRequest) (*models.Mentorship, error)
	AcceptMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error)
	RejectMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error)
	CompleteMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error)
	GetMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.MentorshipView, error)
	ListAsMentor(ctx context.Context, actor models.Actor) (*models.MentorshipsResponse, error)
	ListAsMentee(ctx context.Context, actor models.Actor) (*models.MentorshipsResponse, error)

	ListSessions(ctx context.Context, actor models.Actor, mentorshipID string) (*models.SessionsResponse, error)
	ScheduleSession(ctx context.Context, actor models.Actor, mentorshipID string, req *models.ScheduleSessionRequest) (*models.MentorshipSession, error)
	CompleteSession(ctx context.Context, actor models.Actor, sessionID string) (*models.MentorshipSession, error)
	DeleteSession(ctx context.Context, actor models.Actor, sessionID string) error

	ListGoals(ctx context.Context, actor models.Actor, mentorshipID string) (*models.GoalsResponse, error)
	CreateGoal(ctx context.Context, actor models.Actor, mentorshipID string, req *models.CreateGoalRequest) (*models.MentorshipGoal, error)
	UpdateGoalProgress(ctx context.Context, actor models.Actor, goalID string, progress int) (*models.MentorshipGoal, error)
	DeleteGoal(ctx context.Context, actor models.Actor, goalID string) error
}

// NotificationServiceInterface lists notifications for their recipient
type NotificationServiceInterface interface {
	ListForUser(ctx context.Context, actor models.Actor, limit int) (*models.NotificationsResponse, error)
}

// Ensure services implement their interfaces
var _ MentorshipServiceInterface = (*MentorshipService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
