package notifications

import (
	"context"
	"fmt"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/repository"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
)

const storeSinkName = "store"

// StoreSink persists notifications so recipients can list them later
type StoreSink struct {
	store repository.NotificationStore
}

func NewStoreSink(store repository.NotificationStore) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) Send(ctx context.Context, n *models.Notification) error {
	err := s.store.CreateNotification(ctx, n)
	metrics.NotificationDeliveries.WithLabelValues(storeSinkName, metrics.StatusLabel(err)).Inc()
	if err != nil {
		return fmt.Errorf("store sink: %w", err)
	}
	return nil
}
