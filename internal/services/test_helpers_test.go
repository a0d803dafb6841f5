package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/repository"
	"github.com/alumnihub/alumnihub-api/internal/services"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   *repository.MemoryStore
	sink    *recordingSink
	service *services.MentorshipService
	mentor  models.Actor
	mentee  models.Actor
	other   models.Actor
	admin   models.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	sink := &recordingSink{}
	f := &fixture{
		store:  store,
		sink:   sink,
		mentor: models.Actor{UserID: uuid.NewString(), Role: models.RoleAlumni},
		mentee: models.Actor{UserID: uuid.NewString(), Role: models.RoleAlumni},
		other:  models.Actor{UserID: uuid.NewString(), Role: models.RoleAlumni},
		admin:  models.Actor{UserID: uuid.NewString(), Role: models.RoleSchoolAdmin},
	}
	f.service = services.NewMentorshipService(store, store, sink, services.WithClock(func() time.Time { return fixedNow }))
	return f
}

func (f *fixture) request(t *testing.T) *models.Mentorship {
	t.Helper()
	m, err := f.service.RequestMentorship(context.Background(), f.mentee, &models.RequestMentorshipRequest{
		MentorID:       f.mentor.UserID,
		AreaOfGuidance: "Career switch into data engineering",
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) active(t *testing.T) *models.Mentorship {
	t.Helper()
	m := f.request(t)
	m, err := f.service.AcceptMentorship(context.Background(), f.mentor, m.ID)
	require.NoError(t, err)
	return m
}

func (f *fixture) session(t *testing.T, mentorshipID string) *models.MentorshipSession {
	t.Helper()
	s, err := f.service.ScheduleSession(context.Background(), f.mentee, mentorshipID, &models.ScheduleSessionRequest{
		Title:         "Intro call",
		ScheduledDate: fixedNow.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) goal(t *testing.T, mentorshipID string) *models.MentorshipGoal {
	t.Helper()
	g, err := f.service.CreateGoal(context.Background(), f.mentee, mentorshipID, &models.CreateGoalRequest{
		Title:      "Ship a portfolio project",
		TargetDate: "2026-06-30",
	})
	require.NoError(t, err)
	return g
}
