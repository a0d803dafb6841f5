package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"go.uber.org/zap"
)

func (s *PostgresStore) CreateGoal(ctx context.Context, g *models.MentorshipGoal) error {
	start := time.Now()

	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO mentorship_goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		g.ID,
		g.MentorshipID,
		g.Title,
		g.Description,
		g.TargetDate,
		g.ProgressPercentage,
		g.Status,
		g.CreatedBy,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		err = fmt.Errorf("failed to create goal: %w", err)
	}

	observe(ctx, "createGoal", start, err, zap.String("mentorship_id", g.MentorshipID))
	return err
}

func (s *PostgresStore) GetGoal(ctx context.Context, id string) (*models.MentorshipGoal, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM mentorship_goals
		WHERE id = $1`+lockClause(ctx), id)

	g, err := scanOne(row, models.ScanGoal, "goal")
	observe(ctx, "getGoal", start, err, zap.String("goal_id", id))
	return g, err
}

func (s *PostgresStore) ListGoals(ctx context.Context, mentorshipID string) ([]*models.MentorshipGoal, error) {
	start := time.Now()

	rows, err := s.q(ctx).Query(ctx, `
		SELECT `+goalColumns+`
		FROM mentorship_goals
		WHERE mentorship_id = $1
		ORDER BY created_at, id`, mentorshipID)
	if err != nil {
		err = fmt.Errorf("failed to list goals: %w", err)
		observe(ctx, "listGoals", start, err)
		return nil, err
	}

	items, err := collect(rows, models.ScanGoal)
	observe(ctx, "listGoals", start, err, zap.Int("count", len(items)))
	return items, err
}

func (s *PostgresStore) UpdateGoalProgress(ctx context.Context, id string, progress int, status models.GoalStatus, at time.Time) (*models.MentorshipGoal, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		UPDATE mentorship_goals
		SET progress_percentage = $2, status = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+goalColumns, id, progress, status, at)

	g, err := scanOne(row, models.ScanGoal, "goal")
	observe(ctx, "updateGoalProgress", start, err,
		zap.String("goal_id", id),
		zap.Int("progress", progress))
	return g, err
}

func (s *PostgresStore) DeleteGoal(ctx context.Context, id string) error {
	start := time.Now()

	tag, err := s.q(ctx).Exec(ctx, `
		DELETE FROM mentorship_goals
		WHERE id = $1 AND status <> $2`, id, models.GoalCompleted)
	if err != nil {
		err = fmt.Errorf("failed to delete goal: %w", err)
	} else if tag.RowsAffected() == 0 {
		err = apperrors.InvalidStateError("completed goals cannot be deleted")
	}

	observe(ctx, "deleteGoal", start, err, zap.String("goal_id", id))
	return err
}
