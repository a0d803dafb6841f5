package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/alumnihub/alumnihub-api/pkg/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	uniqueViolation      = "23505"
	openPairIndex        = "mentorships_open_pair_idx"
	mentorshipColumns    = "id, mentor_id, mentee_id, area_of_guidance, status, start_date, end_date, created_at, updated_at"
	sessionColumns       = "id, mentorship_id, title, description, scheduled_date, duration_minutes, meeting_link, status, created_by, created_at, updated_at"
	goalColumns          = "id, mentorship_id, title, description, target_date, progress_percentage, status, created_by, created_at, updated_at"
	notificationColumns  = "id, user_id, type, title, message, link, related_id, is_read, created_at"
	publicProfileColumns = "user_id, name, picture_url, position, company"
)

type txKey struct{}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on a pgx connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// q returns the transaction carried by ctx, or the pool outside one
func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// lockClause row-locks reads made inside a transaction
func lockClause(ctx context.Context) string {
	if _, ok := txFromContext(ctx); ok {
		return " FOR UPDATE"
	}
	return ""
}

// RunInTx runs fn in a read-committed transaction; nested calls reuse the outer one
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	ctx, span := tracing.StartSpan(ctx, "postgres.tx")
	start := time.Now()

	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})

	observe(ctx, "tx", start, err)
	tracing.EndSpan(span, err)
	return err
}

// Ping verifies the database is reachable
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// observe records DB metrics and logs the call. Expected domain outcomes
// (not found, conflicts) count as success since the database did its job.
func observe(ctx context.Context, operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil && !isDomainError(err) {
		status = "error"
		fields = append(fields, zap.Error(err))
	}

	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
	logger.LogDBCall(ctx, operation, status, duration, fields...)
}

func isDomainError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicateRequest) ||
		errors.Is(err, apperrors.ErrInvalidTransition) ||
		errors.Is(err, apperrors.ErrInvalidState)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}

// collect scans every row with scan and closes rows
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return items, nil
}
