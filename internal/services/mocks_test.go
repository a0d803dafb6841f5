package services_test

import (
	"context"
	"sync"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockNotificationSink is a mock implementation of NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Send(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockProfileDirectory is a mock implementation of ProfileDirectory
type MockProfileDirectory struct {
	mock.Mock
}

func (m *MockProfileDirectory) GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.PublicProfile), args.Error(1)
}

// recordingSink keeps every notification it receives
type recordingSink struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (s *recordingSink) Send(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, *n)
	return nil
}

func (s *recordingSink) all() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.sent...)
}

func (s *recordingSink) last() models.Notification {
	sent := s.all()
	if len(sent) == 0 {
		return models.Notification{}
	}
	return sent[len(sent)-1]
}
