package services

import (
	"context"
	"fmt"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/repository"
)

const maxNotificationLimit = 100

// NotificationService serves the recipient's stored notifications
type NotificationService struct {
	store repository.NotificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repository.NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// ListForUser returns the actor's newest notifications; limit is clamped to 1..100
func (s *NotificationService) ListForUser(ctx context.Context, actor models.Actor, limit int) (*models.NotificationsResponse, error) {
	if limit <= 0 || limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	items, err := s.store.ListNotifications(ctx, actor.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]models.Notification, 0, len(items))
	for _, n := range items {
		notifications = append(notifications, *n)
	}
	return &models.NotificationsResponse{
		Notifications: notifications,
		Total:         len(notifications),
	}, nil
}
