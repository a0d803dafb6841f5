package repository

import (
	"context"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
)

// TxManager runs fn as one atomic unit. Nested calls join the outer transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MentorshipStore persists mentorships.
// Reads made inside RunInTx lock the returned row until the transaction ends.
type MentorshipStore interface {
	// CreateMentorship fails with ErrDuplicateRequest when the pair already has an open mentorship
	CreateMentorship(ctx context.Context, m *models.Mentorship) error

	// FindOpenMentorship returns ErrNotFound when the pair has no requested or active mentorship
	FindOpenMentorship(ctx context.Context, mentorID, menteeID string) (*models.Mentorship, error)

	GetMentorship(ctx context.Context, id string) (*models.Mentorship, error)

	// TransitionMentorship moves a mentorship from one status to another only if it is
	// still in `from`. It stamps start_date on activation and end_date on completion.
	// A mentorship no longer in `from` yields ErrInvalidTransition.
	TransitionMentorship(ctx context.Context, id string, from, to models.MentorshipStatus, at time.Time) (*models.Mentorship, error)

	// ListMentorshipsByMentor and ListMentorshipsByMentee return newest-created first
	ListMentorshipsByMentor(ctx context.Context, mentorID string) ([]*models.Mentorship, error)
	ListMentorshipsByMentee(ctx context.Context, menteeID string) ([]*models.Mentorship, error)
}

// SessionStore persists sessions scheduled under a mentorship
type SessionStore interface {
	CreateSession(ctx context.Context, s *models.MentorshipSession) error
	GetSession(ctx context.Context, id string) (*models.MentorshipSession, error)

	// ListSessions returns sessions ordered by scheduled date
	ListSessions(ctx context.Context, mentorshipID string) ([]*models.MentorshipSession, error)

	// CompleteSession succeeds only for a scheduled session, otherwise ErrInvalidTransition
	CompleteSession(ctx context.Context, id string, at time.Time) (*models.MentorshipSession, error)

	// DeleteSession refuses completed sessions with ErrInvalidState
	DeleteSession(ctx context.Context, id string) error
}

// GoalStore persists goals tracked under a mentorship
type GoalStore interface {
	CreateGoal(ctx context.Context, g *models.MentorshipGoal) error
	GetGoal(ctx context.Context, id string) (*models.MentorshipGoal, error)

	// ListGoals returns goals in creation order
	ListGoals(ctx context.Context, mentorshipID string) ([]*models.MentorshipGoal, error)

	UpdateGoalProgress(ctx context.Context, id string, progress int, status models.GoalStatus, at time.Time) (*models.MentorshipGoal, error)

	// DeleteGoal refuses completed goals with ErrInvalidState
	DeleteGoal(ctx context.Context, id string) error
}

// Store is everything the mentorship lifecycle needs from persistence
type Store interface {
	TxManager
	MentorshipStore
	SessionStore
	GoalStore

	Ping(ctx context.Context) error
}

// NotificationStore keeps notification records for the recipient to read later
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error

	// ListNotifications returns the newest notifications first, at most limit
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
}

// ProfileSource resolves public profile fields for a set of users.
// Unknown users are simply absent from the result.
type ProfileSource interface {
	GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error)
}
