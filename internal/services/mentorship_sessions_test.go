package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentorshipService_ScheduleSession(t *testing.T) {
	f := newFixture(t)
	m := f.active(t)
	when := fixedNow.Add(72 * time.Hour)

	s, err := f.service.ScheduleSession(context.Background(), f.mentor, m.ID, &models.ScheduleSessionRequest{
		Title:         "  Mock interview  ",
		ScheduledDate: when,
		MeetingLink:   "https://meet.example.com/abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mock interview", s.Title)
	assert.Equal(t, models.SessionScheduled, s.Status)
	assert.Equal(t, models.DefaultSessionDurationMinutes, s.DurationMinutes)
	assert.Equal(t, f.mentor.UserID, s.CreatedBy)
	assert.True(t, when.Equal(s.ScheduledDate))
	require.NotNil(t, s.MeetingLink)
	assert.Equal(t, "https://meet.example.com/abc", *s.MeetingLink)

	n := f.sink.last()
	assert.Equal(t, f.mentee.UserID, n.UserID)
	assert.Equal(t, models.NotificationSessionScheduled, n.Type)
	assert.Equal(t, m.ID, n.RelatedID)
}

func TestMentorshipService_ScheduleSession_Validation(t *testing.T) {
	f := newFixture(t)
	m := f.active(t)

	tests := []struct {
		name string
		req  models.ScheduleSessionRequest
	}{
		{"missing title", models.ScheduleSessionRequest{ScheduledDate: fixedNow.Add(time.Hour)}},
		{"missing date", models.ScheduleSessionRequest{Title: "Call"}},
		{"date in the past", models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow.Add(-time.Hour)}},
		{"date equal to now", models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow}},
		{"duration too long", models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow.Add(time.Hour), DurationMinutes: 1441}},
		{"negative duration", models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow.Add(time.Hour), DurationMinutes: -5}},
		{"bad link", models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow.Add(time.Hour), MeetingLink: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.service.ScheduleSession(context.Background(), f.mentee, m.ID, &req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestMentorshipService_ScheduleSession_RequiresActiveParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := func() *models.ScheduleSessionRequest {
		return &models.ScheduleSessionRequest{Title: "Call", ScheduledDate: fixedNow.Add(time.Hour)}
	}

	_, err := f.service.ScheduleSession(ctx, f.mentee, uuid.NewString(), req())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	requested := f.request(t)
	_, err = f.service.ScheduleSession(ctx, f.mentee, requested.ID, req())
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = f.service.ScheduleSession(ctx, f.other, requested.ID, req())
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "forbidden is reported before state")

	_, err = f.service.AcceptMentorship(ctx, f.mentor, requested.ID)
	require.NoError(t, err)
	_, err = f.service.CompleteMentorship(ctx, f.mentor, requested.ID)
	require.NoError(t, err)
	_, err = f.service.ScheduleSession(ctx, f.mentee, requested.ID, req())
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestMentorshipService_ListSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)

	later, err := f.service.ScheduleSession(ctx, f.mentee, m.ID, &models.ScheduleSessionRequest{
		Title: "Later", ScheduledDate: fixedNow.Add(96 * time.Hour),
	})
	require.NoError(t, err)
	sooner, err := f.service.ScheduleSession(ctx, f.mentor, m.ID, &models.ScheduleSessionRequest{
		Title: "Sooner", ScheduledDate: fixedNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	resp, err := f.service.ListSessions(ctx, f.mentor, m.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, sooner.ID, resp.Sessions[0].ID)
	assert.Equal(t, later.ID, resp.Sessions[1].ID)

	_, err = f.service.ListSessions(ctx, f.other, m.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.service.ListSessions(ctx, f.admin, m.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestMentorshipService_CompleteSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)
	s := f.session(t, m.ID)

	_, err := f.service.CompleteSession(ctx, f.other, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	done, err := f.service.CompleteSession(ctx, f.mentor, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, done.Status)
	assert.Equal(t, fixedNow, done.UpdatedAt)

	_, err = f.service.CompleteSession(ctx, f.mentee, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.service.CompleteSession(ctx, f.mentee, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMentorshipService_DeleteSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)

	s := f.session(t, m.ID)
	err := f.service.DeleteSession(ctx, f.mentor, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "only the creator may delete")

	require.NoError(t, f.service.DeleteSession(ctx, f.mentee, s.ID))
	_, err = f.store.GetSession(ctx, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	completed := f.session(t, m.ID)
	_, err = f.service.CompleteSession(ctx, f.mentee, completed.ID)
	require.NoError(t, err)
	err = f.service.DeleteSession(ctx, f.mentee, completed.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	err = f.service.DeleteSession(ctx, f.mentee, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
