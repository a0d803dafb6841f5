package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMentorshipStatus_CanTransitionTo(t *testing.T) {
	all := []MentorshipStatus{MentorshipRequested, MentorshipActive, MentorshipCancelled, MentorshipCompleted}
	allowed := map[MentorshipStatus][]MentorshipStatus{
		MentorshipRequested: {MentorshipActive, MentorshipCancelled},
		MentorshipActive:    {MentorshipCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestMentorshipStatus_TerminalAndOpen(t *testing.T) {
	tests := []struct {
		status   MentorshipStatus
		terminal bool
		open     bool
	}{
		{MentorshipRequested, false, true},
		{MentorshipActive, false, true},
		{MentorshipCancelled, true, false},
		{MentorshipCompleted, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.open, tt.status.IsOpen())
		})
	}
}

func TestMentorship_Participants(t *testing.T) {
	m := &Mentorship{MentorID: "u2", MenteeID: "u1"}

	assert.True(t, m.IsParticipant("u1"))
	assert.True(t, m.IsParticipant("u2"))
	assert.False(t, m.IsParticipant("u3"))
	assert.False(t, m.IsParticipant(""))

	assert.Equal(t, "u1", m.Counterpart("u2"))
	assert.Equal(t, "u2", m.Counterpart("u1"))
	assert.Empty(t, m.Counterpart("u3"))
}

func TestGoalStatusForProgress(t *testing.T) {
	tests := []struct {
		progress int
		expected GoalStatus
	}{
		{0, GoalNotStarted},
		{1, GoalInProgress},
		{25, GoalInProgress},
		{50, GoalInProgress},
		{99, GoalInProgress},
		{100, GoalCompleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GoalStatusForProgress(tt.progress), "progress %d", tt.progress)
	}
}

func TestRole(t *testing.T) {
	assert.True(t, RoleSchoolAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.False(t, RoleAlumni.IsAdmin())

	assert.Equal(t, RoleSuperAdmin, ParseRole("super_admin"))
	assert.Equal(t, RoleAlumni, ParseRole(""))
	assert.Equal(t, RoleAlumni, ParseRole("root"))

	s := &UserSession{UserID: "u1", Role: RoleSchoolAdmin}
	assert.Equal(t, Actor{UserID: "u1", Role: RoleSchoolAdmin}, s.Actor())
}
