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

func TestMentorshipService_CreateGoal(t *testing.T) {
	f := newFixture(t)
	m := f.active(t)

	g := f.goal(t, m.ID)

	assert.Equal(t, m.ID, g.MentorshipID)
	assert.Equal(t, 0, g.ProgressPercentage)
	assert.Equal(t, models.GoalNotStarted, g.Status)
	assert.Equal(t, f.mentee.UserID, g.CreatedBy)
	require.NotNil(t, g.TargetDate)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), *g.TargetDate)
}

func TestMentorshipService_CreateGoal_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)

	_, err := f.service.CreateGoal(ctx, f.mentee, m.ID, &models.CreateGoalRequest{Title: " "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.service.CreateGoal(ctx, f.mentee, m.ID, &models.CreateGoalRequest{Title: "Goal", TargetDate: "30/06/2026"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.service.CreateGoal(ctx, f.other, m.ID, &models.CreateGoalRequest{Title: "Goal"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.service.CreateGoal(ctx, f.mentee, uuid.NewString(), &models.CreateGoalRequest{Title: "Goal"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	requested, err := f.service.RequestMentorship(ctx, f.other, &models.RequestMentorshipRequest{MentorID: f.mentor.UserID})
	require.NoError(t, err)
	_, err = f.service.CreateGoal(ctx, f.other, requested.ID, &models.CreateGoalRequest{Title: "Goal"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestMentorshipService_UpdateGoalProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)
	g := f.goal(t, m.ID)

	tests := []struct {
		progress int
		status   models.GoalStatus
	}{
		{40, models.GoalInProgress},
		{0, models.GoalNotStarted},
		{99, models.GoalInProgress},
		{100, models.GoalCompleted},
		{60, models.GoalInProgress},
	}

	for _, tt := range tests {
		updated, err := f.service.UpdateGoalProgress(ctx, f.mentor, g.ID, tt.progress)
		require.NoError(t, err)
		assert.Equal(t, tt.progress, updated.ProgressPercentage)
		assert.Equal(t, tt.status, updated.Status, "progress %d", tt.progress)
	}
}

func TestMentorshipService_UpdateGoalProgress_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)
	g := f.goal(t, m.ID)

	for _, progress := range []int{-1, 101} {
		_, err := f.service.UpdateGoalProgress(ctx, f.mentee, g.ID, progress)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}

	_, err := f.service.UpdateGoalProgress(ctx, f.other, g.ID, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.service.UpdateGoalProgress(ctx, f.mentee, uuid.NewString(), 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.service.CompleteMentorship(ctx, f.mentee, m.ID)
	require.NoError(t, err)
	_, err = f.service.UpdateGoalProgress(ctx, f.mentee, g.ID, 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	stored, err := f.store.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ProgressPercentage)
}

func TestMentorshipService_ListAndDeleteGoals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.active(t)

	first := f.goal(t, m.ID)
	second, err := f.service.CreateGoal(ctx, f.mentor, m.ID, &models.CreateGoalRequest{Title: "Read two books"})
	require.NoError(t, err)
	assert.Nil(t, second.TargetDate)

	resp, err := f.service.ListGoals(ctx, f.mentor, m.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, first.ID, resp.Goals[0].ID, "creation order")
	assert.Equal(t, second.ID, resp.Goals[1].ID)

	_, err = f.service.ListGoals(ctx, f.other, m.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.service.DeleteGoal(ctx, f.mentee, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	require.NoError(t, f.service.DeleteGoal(ctx, f.mentor, second.ID))

	_, err = f.service.UpdateGoalProgress(ctx, f.mentee, first.ID, 100)
	require.NoError(t, err)
	err = f.service.DeleteGoal(ctx, f.mentee, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	resp, err = f.service.ListGoals(ctx, f.mentee, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}
