package imaging

import (
	"fmt"
	"log"
	"time"
)

// RetryPolicy bounds how often a flaky codec operation is reattempted and how
// long to wait between attempts.
type RetryPolicy struct {
	Attempts int
	Backoff  func(attempt int) time.Duration
}

// LinearBackoff returns a backoff of attempt × unit, so retries slow down as
// failures pile up.
func LinearBackoff(unit time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * unit
	}
}

// DefaultRetry is the policy both conversion and thumbnailing use:
// 3 attempts with 1s, 2s waits in between.
func DefaultRetry() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: LinearBackoff(time.Second)}
}

// Do runs op until it succeeds or the policy is exhausted. Each failed attempt
// is logged with its number; the final error wraps the last failure.
func (p RetryPolicy) Do(label string, op func() error) error {
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		log.Printf("imaging: %s attempt %d failed: %v", label, attempt, err)
		if attempt < p.Attempts && p.Backoff != nil {
			time.Sleep(p.Backoff(attempt))
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", label, p.Attempts, err)
}
