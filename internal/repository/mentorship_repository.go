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

// CreateMentorship inserts a new mentorship. The partial unique index on open
// (mentor, mentee) pairs turns a concurrent duplicate into ErrDuplicateRequest.
func (s *PostgresStore) CreateMentorship(ctx context.Context, m *models.Mentorship) error {
	start := time.Now()

	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO mentorships (id, mentor_id, mentee_id, area_of_guidance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.MentorID, m.MenteeID, m.AreaOfGuidance, m.Status, m.CreatedAt, m.UpdatedAt)

	if isUniqueViolation(err, openPairIndex) {
		err = apperrors.ErrDuplicateRequest
	} else if err != nil {
		err = fmt.Errorf("failed to create mentorship: %w", err)
	}

	observe(ctx, "createMentorship", start, err, zap.String("mentorship_id", m.ID))
	return err
}

// FindOpenMentorship returns the requested or active mentorship for the pair
func (s *PostgresStore) FindOpenMentorship(ctx context.Context, mentorID, menteeID string) (*models.Mentorship, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		SELECT `+mentorshipColumns+`
		FROM mentorships
		WHERE mentor_id = $1 AND mentee_id = $2 AND status IN ('requested', 'active')
		LIMIT 1`+lockClause(ctx), mentorID, menteeID)

	m, err := scanOne(row, models.ScanMentorship, "mentorship")
	observe(ctx, "findOpenMentorship", start, err)
	return m, err
}

// GetMentorship fetches a mentorship by id
func (s *PostgresStore) GetMentorship(ctx context.Context, id string) (*models.Mentorship, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		SELECT `+mentorshipColumns+`
		FROM mentorships
		WHERE id = $1`+lockClause(ctx), id)

	m, err := scanOne(row, models.ScanMentorship, "mentorship")
	observe(ctx, "getMentorship", start, err, zap.String("mentorship_id", id))
	return m, err
}

// TransitionMentorship applies a conditional status update
func (s *PostgresStore) TransitionMentorship(ctx context.Context, id string, from, to models.MentorshipStatus, at time.Time) (*models.Mentorship, error) {
	start := time.Now()

	row := s.q(ctx).QueryRow(ctx, `
		UPDATE mentorships
		SET status = $3::text,
		    start_date = CASE WHEN $3::text = 'active' THEN $4 ELSE start_date END,
		    end_date = CASE WHEN $3::text = 'completed' THEN $4 ELSE end_date END,
		    updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING `+mentorshipColumns, id, from, to, at)

	m, err := models.ScanMentorship(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = apperrors.TransitionError(string(from), string(to))
	case err != nil:
		err = fmt.Errorf("failed to update mentorship status: %w", err)
	}

	observe(ctx, "transitionMentorship", start, err,
		zap.String("mentorship_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMentorshipsByMentor returns the mentor's mentorships, newest first
func (s *PostgresStore) ListMentorshipsByMentor(ctx context.Context, mentorID string) ([]*models.Mentorship, error) {
	return s.listMentorships(ctx, "listMentorshipsByMentor", "mentor_id", mentorID)
}

// ListMentorshipsByMentee returns the mentee's mentorships, newest first
func (s *PostgresStore) ListMentorshipsByMentee(ctx context.Context, menteeID string) ([]*models.Mentorship, error) {
	return s.listMentorships(ctx, "listMentorshipsByMentee", "mentee_id", menteeID)
}

// listMentorships filters on column, which is always one of the constants above
func (s *PostgresStore) listMentorships(ctx context.Context, operation, column, userID string) ([]*models.Mentorship, error) {
	start := time.Now()

	rows, err := s.q(ctx).Query(ctx, `
		SELECT `+mentorshipColumns+`
		FROM mentorships
		WHERE `+column+` = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		err = fmt.Errorf("failed to list mentorships: %w", err)
		observe(ctx, operation, start, err)
		return nil, err
	}

	items, err := collect(rows, models.ScanMentorship)
	observe(ctx, operation, start, err, zap.Int("count", len(items)))
	return items, err
}

// scanOne maps pgx.ErrNoRows to a not-found error for resource
func scanOne[T any](row pgx.Row, scan func(pgx.Row) (*T, error), resource string) (*T, error) {
	item, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundError(resource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	return item, nil
}
