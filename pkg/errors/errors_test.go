package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"not found", NotFoundError("mentorship"), ErrNotFound, "mentorship not found"},
		{"forbidden", ForbiddenError("only the mentor can accept"), ErrForbidden, "only the mentor can accept: forbidden"},
		{"forbidden without reason", ForbiddenError(""), ErrForbidden, "forbidden"},
		{"validation", ValidationError("title", "is required"), ErrValidation, "title is required: validation failed"},
		{"transition", TransitionError("active", "cancelled"), ErrInvalidTransition, "invalid status transition: cannot transition from 'active' to 'cancelled'"},
		{"state", InvalidStateError("mentorship is not active"), ErrInvalidState, "invalid state: mentorship is not active"},
		{"internal", InternalError("db down"), ErrInternal, "db down: internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.kind))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(TransitionError("a", "b"), ErrInvalidState))
	assert.False(t, errors.Is(InvalidStateError("x"), ErrInvalidTransition))
	assert.False(t, errors.Is(ErrDuplicateRequest, ErrValidation))
}
