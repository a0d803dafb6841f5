package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"go.uber.org/zap"
)

const defaultNotificationLimit = 50

func (s *PostgresStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	start := time.Now()

	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.RelatedID, n.IsRead, n.CreatedAt)
	if err != nil {
		err = fmt.Errorf("failed to create notification: %w", err)
	}

	observe(ctx, "createNotification", start, err, zap.String("type", string(n.Type)))
	return err
}

func (s *PostgresStore) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	start := time.Now()
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	rows, err := s.q(ctx).Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`, userID, limit)
	if err != nil {
		err = fmt.Errorf("failed to list notifications: %w", err)
		observe(ctx, "listNotifications", start, err)
		return nil, err
	}

	items, err := collect(rows, models.ScanNotification)
	observe(ctx, "listNotifications", start, err, zap.Int("count", len(items)))
	return items, err
}
