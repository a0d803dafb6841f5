package services

import (
	"context"
	"strings"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// participantMentorship loads a mentorship the actor takes part in
func (s *MentorshipService) participantMentorship(ctx context.Context, actor models.Actor, mentorshipID string) (*models.Mentorship, error) {
	if !isUUID(mentorshipID) {
		return nil, apperrors.NotFoundError("mentorship")
	}
	m, err := s.store.GetMentorship(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(actor.UserID) {
		return nil, apperrors.ForbiddenError("not a participant of this mentorship")
	}
	return m, nil
}

// ListSessions returns the mentorship's sessions ordered by scheduled date
func (s *MentorshipService) ListSessions(ctx context.Context, actor models.Actor, mentorshipID string) (*models.SessionsResponse, error) {
	if _, err := s.participantMentorship(ctx, actor, mentorshipID); err != nil {
		return nil, err
	}

	sessions, err := s.store.ListSessions(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}

	items := make([]models.MentorshipSession, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, *session)
	}
	return &models.SessionsResponse{Sessions: items, Total: len(items)}, nil
}

// ScheduleSession creates a scheduled session under an active mentorship
func (s *MentorshipService) ScheduleSession(ctx context.Context, actor models.Actor, mentorshipID string, req *models.ScheduleSessionRequest) (*models.MentorshipSession, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.MeetingLink = strings.TrimSpace(req.MeetingLink)

	if err := s.validate.Struct(req); err != nil {
		metrics.SessionOperations.WithLabelValues("schedule", "invalid").Inc()
		return nil, validationError(err)
	}

	now := s.clock()
	if req.ScheduledDate.IsZero() {
		metrics.SessionOperations.WithLabelValues("schedule", "invalid").Inc()
		return nil, apperrors.ValidationError("scheduledDate", "is required")
	}
	if !req.ScheduledDate.After(now) {
		metrics.SessionOperations.WithLabelValues("schedule", "invalid").Inc()
		return nil, apperrors.ValidationError("scheduledDate", "must be in the future")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = models.DefaultSessionDurationMinutes
	}

	session := &models.MentorshipSession{
		ID:              uuid.NewString(),
		MentorshipID:    mentorshipID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledDate:   req.ScheduledDate.UTC(),
		DurationMinutes: duration,
		Status:          models.SessionScheduled,
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.MeetingLink != "" {
		link := req.MeetingLink
		session.MeetingLink = &link
	}

	var mentorship *models.Mentorship
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		m, err := s.participantMentorship(ctx, actor, mentorshipID)
		if err != nil {
			return err
		}
		if m.Status != models.MentorshipActive {
			return apperrors.InvalidStateError("sessions can only be scheduled on an active mentorship")
		}
		mentorship = m
		return s.store.CreateSession(ctx, session)
	})
	metrics.SessionOperations.WithLabelValues("schedule", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to schedule session", err,
			zap.String("mentorship_id", mentorshipID),
			zap.String("actor_id", actor.UserID))
		return nil, err
	}

	logger.Info("Session scheduled",
		zap.String("session_id", session.ID),
		zap.String("mentorship_id", mentorshipID),
		zap.Time("scheduled_date", session.ScheduledDate))

	s.notify(ctx, mentorship.Counterpart(actor.UserID), models.NotificationSessionScheduled,
		"New session scheduled",
		"A session \""+session.Title+"\" has been scheduled.",
		mentorship.ID)

	return session, nil
}

// CompleteSession marks a scheduled session completed; completed sessions are immutable
func (s *MentorshipService) CompleteSession(ctx context.Context, actor models.Actor, sessionID string) (*models.MentorshipSession, error) {
	if !isUUID(sessionID) {
		return nil, apperrors.NotFoundError("session")
	}

	var completed *models.MentorshipSession
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		session, err := s.store.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if _, err := s.participantMentorship(ctx, actor, session.MentorshipID); err != nil {
			return err
		}
		if session.Status != models.SessionScheduled {
			return apperrors.TransitionError(string(session.Status), string(models.SessionCompleted))
		}
		completed, err = s.store.CompleteSession(ctx, sessionID, s.clock())
		return err
	})
	metrics.SessionOperations.WithLabelValues("complete", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to complete session", err,
			zap.String("session_id", sessionID),
			zap.String("actor_id", actor.UserID))
		return nil, err
	}

	logger.Info("Session completed",
		zap.String("session_id", sessionID),
		zap.String("actor_id", actor.UserID))
	return completed, nil
}

// DeleteSession removes a session. Only its creator may delete it, and never once completed.
func (s *MentorshipService) DeleteSession(ctx context.Context, actor models.Actor, sessionID string) error {
	if !isUUID(sessionID) {
		return apperrors.NotFoundError("session")
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		session, err := s.store.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.CreatedBy != actor.UserID {
			return apperrors.ForbiddenError("only the session creator can delete it")
		}
		if session.Status == models.SessionCompleted {
			return apperrors.InvalidStateError("completed sessions cannot be deleted")
		}
		return s.store.DeleteSession(ctx, sessionID)
	})
	metrics.SessionOperations.WithLabelValues("delete", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to delete session", err,
			zap.String("session_id", sessionID),
			zap.String("actor_id", actor.UserID))
		return err
	}

	logger.Info("Session deleted",
		zap.String("session_id", sessionID),
		zap.String("actor_id", actor.UserID))
	return nil
}
