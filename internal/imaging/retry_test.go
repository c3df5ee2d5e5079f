package imaging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	policy := RetryPolicy{Attempts: 3}

	calls := 0
	err := policy.Do("op", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	policy := RetryPolicy{Attempts: 3}

	calls := 0
	err := policy.Do("op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhausted(t *testing.T) {
	policy := RetryPolicy{Attempts: 3}
	sentinel := errors.New("codec broke")

	calls := 0
	err := policy.Do("op", func() error {
		calls++
		return sentinel
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryBackoffSchedule(t *testing.T) {
	var waits []time.Duration
	policy := RetryPolicy{
		Attempts: 3,
		Backoff: func(attempt int) time.Duration {
			d := LinearBackoff(time.Millisecond)(attempt)
			waits = append(waits, d)
			return 0 // record the schedule without sleeping
		},
	}

	_ = policy.Do("op", func() error { return errors.New("nope") })

	// Backoff happens between attempts, not after the last one.
	assert.Equal(t, []time.Duration{1 * time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(time.Second)
	assert.Equal(t, 1*time.Second, backoff(1))
	assert.Equal(t, 2*time.Second, backoff(2))
	assert.Equal(t, 3*time.Second, backoff(3))
}
