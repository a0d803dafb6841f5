package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_PassesResult(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("test"))

	got, err := Execute(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestExecute_TripsAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("webhook"))
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := Execute(cb, func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsOpen(err))
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := Execute(cb, func() (int, error) { return 1, nil })
	require.Error(t, err)
	assert.True(t, IsOpen(err))
	assert.Contains(t, err.Error(), "circuit breaker 'webhook' is open")
}
