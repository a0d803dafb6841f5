package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/repository"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MentorshipService owns the mentorship state machine and the sessions and goals nested under it
type MentorshipService struct {
	store    repository.Store
	profiles ProfileDirectory
	sink     NotificationSink
	validate *validator.Validate
	now      func() time.Time
}

// Option customizes a MentorshipService
type Option func(*MentorshipService)

// WithClock replaces time.Now, used by tests to pin timestamps
func WithClock(now func() time.Time) Option {
	return func(s *MentorshipService) {
		s.now = now
	}
}

// NewMentorshipService creates a new MentorshipService. profiles and sink may be nil.
func NewMentorshipService(store repository.Store, profiles ProfileDirectory, sink NotificationSink, opts ...Option) *MentorshipService {
	s := &MentorshipService{
		store:    store,
		profiles: profiles,
		sink:     sink,
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MentorshipService) clock() time.Time {
	return s.now().UTC()
}

// RequestMentorship creates a requested mentorship with the actor as mentee and notifies the mentor
func (s *MentorshipService) RequestMentorship(ctx context.Context, actor models.Actor, req *models.RequestMentorshipRequest) (*models.Mentorship, error) {
	req.MentorID = strings.TrimSpace(req.MentorID)
	req.AreaOfGuidance = strings.TrimSpace(req.AreaOfGuidance)

	if err := s.validate.Struct(req); err != nil {
		metrics.MentorshipRequests.WithLabelValues("invalid").Inc()
		return nil, validationError(err)
	}
	if req.MentorID == actor.UserID {
		metrics.MentorshipRequests.WithLabelValues("invalid").Inc()
		return nil, apperrors.ValidationError("mentorId", "cannot be the requester")
	}

	now := s.clock()
	mentorship := &models.Mentorship{
		ID:             uuid.NewString(),
		MentorID:       req.MentorID,
		MenteeID:       actor.UserID,
		AreaOfGuidance: req.AreaOfGuidance,
		Status:         models.MentorshipRequested,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := s.store.FindOpenMentorship(ctx, mentorship.MentorID, mentorship.MenteeID)
		switch {
		case err == nil:
			return apperrors.ErrDuplicateRequest
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}
		return s.store.CreateMentorship(ctx, mentorship)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRequest) {
			metrics.MentorshipRequests.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		metrics.MentorshipRequests.WithLabelValues("error").Inc()
		logger.Error("Failed to create mentorship request",
			zap.String("mentor_id", mentorship.MentorID),
			zap.String("mentee_id", mentorship.MenteeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create mentorship request: %w", err)
	}

	metrics.MentorshipRequests.WithLabelValues("created").Inc()
	logger.Info("Mentorship requested",
		zap.String("mentorship_id", mentorship.ID),
		zap.String("mentor_id", mentorship.MentorID),
		zap.String("mentee_id", mentorship.MenteeID))

	s.notify(ctx, mentorship.MentorID, models.NotificationMentorshipRequested,
		"New mentorship request",
		"You have received a new mentorship request.",
		mentorship.ID)

	return mentorship, nil
}

// AcceptMentorship moves a requested mentorship to active. Only the mentor may accept.
func (s *MentorshipService) AcceptMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error) {
	m, err := s.transition(ctx, actor, mentorshipID, models.MentorshipActive)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, m.MenteeID, models.NotificationMentorshipAccepted,
		"Mentorship accepted",
		"Your mentorship request has been accepted.",
		m.ID)
	return m, nil
}

// RejectMentorship cancels a requested mentorship. Only the mentor may reject,
// and only while the request is still pending.
func (s *MentorshipService) RejectMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error) {
	m, err := s.transition(ctx, actor, mentorshipID, models.MentorshipCancelled)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, m.MenteeID, models.NotificationMentorshipRejected,
		"Mentorship request declined",
		"Your mentorship request was declined.",
		m.ID)
	return m, nil
}

// CompleteMentorship closes an active mentorship. Either party may complete it;
// open sessions and goals are left as they are.
func (s *MentorshipService) CompleteMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error) {
	m, err := s.transition(ctx, actor, mentorshipID, models.MentorshipCompleted)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, m.Counterpart(actor.UserID), models.NotificationMentorshipCompleted,
		"Mentorship completed",
		"Your mentorship has been marked as completed.",
		m.ID)
	return m, nil
}

// authorizeTransition: the mentor decides on requests, either party completes
func authorizeTransition(m *models.Mentorship, actor models.Actor, to models.MentorshipStatus) error {
	switch to {
	case models.MentorshipActive, models.MentorshipCancelled:
		if m.MentorID != actor.UserID {
			return apperrors.ForbiddenError("only the mentor can respond to a mentorship request")
		}
	case models.MentorshipCompleted:
		if !m.IsParticipant(actor.UserID) {
			return apperrors.ForbiddenError("only the mentor or mentee can complete a mentorship")
		}
	default:
		return apperrors.TransitionError(string(m.Status), string(to))
	}
	return nil
}

// transition loads the mentorship under lock, checks the actor and the current
// state, then applies a conditional update from the state it observed
func (s *MentorshipService) transition(ctx context.Context, actor models.Actor, mentorshipID string, to models.MentorshipStatus) (*models.Mentorship, error) {
	if !isUUID(mentorshipID) {
		return nil, apperrors.NotFoundError("mentorship")
	}

	var (
		from    models.MentorshipStatus
		updated *models.Mentorship
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		m, err := s.store.GetMentorship(ctx, mentorshipID)
		if err != nil {
			return err
		}
		if err := authorizeTransition(m, actor, to); err != nil {
			return err
		}
		if !m.Status.CanTransitionTo(to) {
			return apperrors.TransitionError(string(m.Status), string(to))
		}

		from = m.Status
		updated, err = s.store.TransitionMentorship(ctx, m.ID, m.Status, to, s.clock())
		return err
	})
	if err != nil {
		s.logFailure("Mentorship transition failed", err,
			zap.String("mentorship_id", mentorshipID),
			zap.String("actor_id", actor.UserID),
			zap.String("to", string(to)))
		return nil, err
	}

	metrics.MentorshipTransitions.WithLabelValues(string(from), string(to)).Inc()
	logger.Info("Mentorship status changed",
		zap.String("mentorship_id", updated.ID),
		zap.String("actor_id", actor.UserID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return updated, nil
}

// GetMentorship returns one mentorship to a participant or an admin
func (s *MentorshipService) GetMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.MentorshipView, error) {
	if !isUUID(mentorshipID) {
		return nil, apperrors.NotFoundError("mentorship")
	}

	m, err := s.store.GetMentorship(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(actor.UserID) && !actor.Role.IsAdmin() {
		return nil, apperrors.ForbiddenError("not a participant of this mentorship")
	}

	views := s.withProfiles(ctx, []*models.Mentorship{m})
	return &views[0], nil
}

// ListAsMentor returns mentorships where the actor is the mentor, newest first
func (s *MentorshipService) ListAsMentor(ctx context.Context, actor models.Actor) (*models.MentorshipsResponse, error) {
	return s.list(ctx, actor, "mentor", s.store.ListMentorshipsByMentor)
}

// ListAsMentee returns mentorships where the actor is the mentee, newest first
func (s *MentorshipService) ListAsMentee(ctx context.Context, actor models.Actor) (*models.MentorshipsResponse, error) {
	return s.list(ctx, actor, "mentee", s.store.ListMentorshipsByMentee)
}

func (s *MentorshipService) list(
	ctx context.Context,
	actor models.Actor,
	role string,
	fetch func(ctx context.Context, userID string) ([]*models.Mentorship, error),
) (*models.MentorshipsResponse, error) {
	start := time.Now()

	mentorships, err := fetch(ctx, actor.UserID)
	if err != nil {
		logger.Error("Failed to list mentorships",
			zap.String("user_id", actor.UserID),
			zap.String("role", role),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list mentorships: %w", err)
	}

	views := s.withProfiles(ctx, mentorships)

	metrics.MentorshipListDuration.WithLabelValues(role).Observe(metrics.MeasureDuration(start))
	logger.Debug("Listed mentorships",
		zap.String("user_id", actor.UserID),
		zap.String("role", role),
		zap.Int("count", len(views)))

	return &models.MentorshipsResponse{
		Mentorships: views,
		Total:       len(views),
	}, nil
}

// withProfiles joins both parties' public profiles. A directory failure degrades
// to views without profiles rather than failing the read.
func (s *MentorshipService) withProfiles(ctx context.Context, mentorships []*models.Mentorship) []models.MentorshipView {
	views := make([]models.MentorshipView, 0, len(mentorships))
	for _, m := range mentorships {
		views = append(views, models.MentorshipView{Mentorship: *m})
	}
	if s.profiles == nil || len(mentorships) == 0 {
		return views
	}

	ids := make([]string, 0, len(mentorships)*2)
	for _, m := range mentorships {
		ids = append(ids, m.MentorID, m.MenteeID)
	}

	profiles, err := s.profiles.GetPublicProfiles(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load public profiles, returning mentorships without them", zap.Error(err))
		return views
	}

	for i := range views {
		if p, ok := profiles[views[i].MentorID]; ok {
			views[i].Mentor = &p
		}
		if p, ok := profiles[views[i].MenteeID]; ok {
			views[i].Mentee = &p
		}
	}
	return views
}

// notify dispatches after the write has committed; failures are only logged
func (s *MentorshipService) notify(ctx context.Context, recipientID string, kind models.NotificationType, title, message, relatedID string) {
	if s.sink == nil || recipientID == "" {
		return
	}

	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    recipientID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Link:      "/mentorships/" + relatedID,
		RelatedID: relatedID,
		CreatedAt: s.clock(),
	}
	if err := s.sink.Send(ctx, n); err != nil {
		logger.Warn("Failed to dispatch notification",
			zap.String("type", string(kind)),
			zap.String("recipient_id", recipientID),
			zap.String("related_id", relatedID),
			zap.Error(err))
	}
}

// logFailure logs unexpected errors at error level and domain outcomes at debug
func (s *MentorshipService) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if isDomainError(err) {
		logger.Debug(msg, fields...)
		return
	}
	logger.Error(msg, fields...)
}

func isDomainError(err error) bool {
	for _, kind := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrForbidden,
		apperrors.ErrValidation,
		apperrors.ErrDuplicateRequest,
		apperrors.ErrInvalidState,
		apperrors.ErrInvalidTransition,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
