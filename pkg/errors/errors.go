package errors

import (
	"errors"
	"fmt"
)

// Application error kinds. Handlers map these to HTTP status codes with errors.Is,
// so every constructor below wraps exactly one of them.

var (
	// ErrNotFound indicates a referenced mentorship, session or goal does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the actor lacks the role or ownership for the action
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates missing or malformed input
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateRequest indicates an open mentorship already exists for the pair
	ErrDuplicateRequest = errors.New("mentorship request already exists")

	// ErrInvalidState indicates the parent record is in a state that forbids the action
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition indicates a status change that the state machine does not allow
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error for the given resource
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ForbiddenError creates a forbidden error with a reason
func ForbiddenError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrForbidden)
	}
	return ErrForbidden
}

// ValidationError creates a validation error for a field
func ValidationError(field, reason string) error {
	return fmt.Errorf("%s %s: %w", field, reason, ErrValidation)
}

// TransitionError reports a forbidden status change
func TransitionError(from, to string) error {
	return fmt.Errorf("%w: cannot transition from '%s' to '%s'", ErrInvalidTransition, from, to)
}

// InvalidStateError creates an invalid state error with a reason
func InvalidStateError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, reason)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
