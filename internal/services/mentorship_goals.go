package services

import (
	"context"
	"strings"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const targetDateLayout = "2006-01-02"

// ListGoals returns the mentorship's goals in creation order
func (s *MentorshipService) ListGoals(ctx context.Context, actor models.Actor, mentorshipID string) (*models.GoalsResponse, error) {
	if _, err := s.participantMentorship(ctx, actor, mentorshipID); err != nil {
		return nil, err
	}

	goals, err := s.store.ListGoals(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}

	items := make([]models.MentorshipGoal, 0, len(goals))
	for _, g := range goals {
		items = append(items, *g)
	}
	return &models.GoalsResponse{Goals: items, Total: len(items)}, nil
}

// CreateGoal adds a not-started goal to an active mentorship
func (s *MentorshipService) CreateGoal(ctx context.Context, actor models.Actor, mentorshipID string, req *models.CreateGoalRequest) (*models.MentorshipGoal, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.TargetDate = strings.TrimSpace(req.TargetDate)

	if err := s.validate.Struct(req); err != nil {
		metrics.GoalOperations.WithLabelValues("create", "invalid").Inc()
		return nil, validationError(err)
	}

	var targetDate *time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse(targetDateLayout, req.TargetDate)
		if err != nil {
			return nil, apperrors.ValidationError("targetDate", "must be a date in YYYY-MM-DD format")
		}
		targetDate = &parsed
	}

	now := s.clock()
	goal := &models.MentorshipGoal{
		ID:                 uuid.NewString(),
		MentorshipID:       mentorshipID,
		Title:              req.Title,
		Description:        req.Description,
		TargetDate:         targetDate,
		ProgressPercentage: 0,
		Status:             models.GoalNotStarted,
		CreatedBy:          actor.UserID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		m, err := s.participantMentorship(ctx, actor, mentorshipID)
		if err != nil {
			return err
		}
		if m.Status != models.MentorshipActive {
			return apperrors.InvalidStateError("goals can only be created on an active mentorship")
		}
		return s.store.CreateGoal(ctx, goal)
	})
	metrics.GoalOperations.WithLabelValues("create", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to create goal", err,
			zap.String("mentorship_id", mentorshipID),
			zap.String("actor_id", actor.UserID))
		return nil, err
	}

	logger.Info("Goal created",
		zap.String("goal_id", goal.ID),
		zap.String("mentorship_id", mentorshipID))
	return goal, nil
}

// UpdateGoalProgress sets progress in [0,100] and derives the goal status from it.
// Either party may update progress while the mentorship is active.
func (s *MentorshipService) UpdateGoalProgress(ctx context.Context, actor models.Actor, goalID string, progress int) (*models.MentorshipGoal, error) {
	if progress < 0 || progress > 100 {
		metrics.GoalOperations.WithLabelValues("progress", "invalid").Inc()
		return nil, apperrors.ValidationError("progressPercentage", "must be between 0 and 100")
	}
	if !isUUID(goalID) {
		return nil, apperrors.NotFoundError("goal")
	}

	status := models.GoalStatusForProgress(progress)

	var updated *models.MentorshipGoal
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		goal, err := s.store.GetGoal(ctx, goalID)
		if err != nil {
			return err
		}
		m, err := s.participantMentorship(ctx, actor, goal.MentorshipID)
		if err != nil {
			return err
		}
		if m.Status != models.MentorshipActive {
			return apperrors.InvalidStateError("goal progress can only change while the mentorship is active")
		}
		updated, err = s.store.UpdateGoalProgress(ctx, goalID, progress, status, s.clock())
		return err
	})
	metrics.GoalOperations.WithLabelValues("progress", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to update goal progress", err,
			zap.String("goal_id", goalID),
			zap.String("actor_id", actor.UserID),
			zap.Int("progress", progress))
		return nil, err
	}

	logger.Info("Goal progress updated",
		zap.String("goal_id", goalID),
		zap.Int("progress", progress),
		zap.String("status", string(status)))
	return updated, nil
}

// DeleteGoal removes a goal. Only its creator may delete it, and never once completed.
func (s *MentorshipService) DeleteGoal(ctx context.Context, actor models.Actor, goalID string) error {
	if !isUUID(goalID) {
		return apperrors.NotFoundError("goal")
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		goal, err := s.store.GetGoal(ctx, goalID)
		if err != nil {
			return err
		}
		if goal.CreatedBy != actor.UserID {
			return apperrors.ForbiddenError("only the goal creator can delete it")
		}
		if goal.Status == models.GoalCompleted {
			return apperrors.InvalidStateError("completed goals cannot be deleted")
		}
		return s.store.DeleteGoal(ctx, goalID)
	})
	metrics.GoalOperations.WithLabelValues("delete", metrics.StatusLabel(err)).Inc()
	if err != nil {
		s.logFailure("Failed to delete goal", err,
			zap.String("goal_id", goalID),
			zap.String("actor_id", actor.UserID))
		return err
	}

	logger.Info("Goal deleted",
		zap.String("goal_id", goalID),
		zap.String("actor_id", actor.UserID))
	return nil
}
