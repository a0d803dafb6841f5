package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *PostgresStore) CreateSession(ctx context.Context, session *models.MentorshipSession) error {
	start := time.Now()

	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO mentorship_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		session.ID,
		session.MentorshipID,
		session.Title,
		session.Description,
		session.ScheduledDate,
		session.DurationMinutes,
		session.MeetingLink,
		session.Status,
		session.CreatedBy,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		err = fmt.Errorf("failed to create session: %w", err)
	}

	observe(ctx, "createSession", start, err, zap.String("mentorship_id", session.MentorshipID))
	return err
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*models.MentorshipSession, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM mentorship_sessions
		WHERE id = $1`+lockClause(ctx), id)

	session, err := scanOne(row, models.ScanSession, "session")
	observe(ctx, "getSession", start, err, zap.String("session_id", id))
	return session, err
}

func (s *PostgresStore) ListSessions(ctx context.Context, mentorshipID string) ([]*models.MentorshipSession, error) {
	start := time.Now()

	rows, err := s.q(ctx).Query(ctx, `
		SELECT `+sessionColumns+`
		FROM mentorship_sessions
		WHERE mentorship_id = $1
		ORDER BY scheduled_date, created_at`, mentorshipID)
	if err != nil {
		err = fmt.Errorf("failed to list sessions: %w", err)
		observe(ctx, "listSessions", start, err)
		return nil, err
	}

	items, err := collect(rows, models.ScanSession)
	observe(ctx, "listSessions", start, err, zap.Int("count", len(items)))
	return items, err
}

func (s *PostgresStore) CompleteSession(ctx context.Context, id string, at time.Time) (*models.MentorshipSession, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		UPDATE mentorship_sessions
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
		RETURNING `+sessionColumns, id, models.SessionCompleted, at, models.SessionScheduled)

	session, err := models.ScanSession(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = apperrors.TransitionError(string(models.SessionScheduled), string(models.SessionCompleted))
	case err != nil:
		err = fmt.Errorf("failed to complete session: %w", err)
	}

	observe(ctx, "completeSession", start, err, zap.String("session_id", id))
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	start := time.Now()

	tag, err := s.q(ctx).Exec(ctx, `
		DELETE FROM mentorship_sessions
		WHERE id = $1 AND status <> $2`, id, models.SessionCompleted)
	if err != nil {
		err = fmt.Errorf("failed to delete session: %w", err)
	} else if tag.RowsAffected() == 0 {
		err = apperrors.InvalidStateError("completed sessions cannot be deleted")
	}

	observe(ctx, "deleteSession", start, err, zap.String("session_id", id))
	return err
}
