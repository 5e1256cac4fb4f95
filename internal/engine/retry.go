package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DefaultMaxAttempts is the default number of delete attempts per resource.
const DefaultMaxAttempts = 5

// RetryPolicy defines retry behavior for conflict and transient provider
// errors.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns a sensible default retry policy.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// RetryWithBackoff executes fn up to policy.MaxAttempts times with
// exponential backoff and jitter between attempts. It retries only while
// shouldRetry returns true for the error.
func RetryWithBackoff(ctx context.Context, policy *RetryPolicy, fn func() error, shouldRetry func(error) bool) error {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !shouldRetry(lastErr) {
			return lastErr
		}

		if attempt < policy.MaxAttempts-1 {
			delay := calculateBackoff(attempt, policy.BaseDelay, policy.MaxDelay)
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("max attempts (%d) exceeded: %w", policy.MaxAttempts, lastErr)
}

// calculateBackoff returns exponential backoff with jitter.
func calculateBackoff(attempt int, base, max time.Duration) time.Duration {
	backoff := float64(base) * math.Pow(2, float64(attempt))
	if backoff > float64(max) {
		backoff = float64(max)
	}
	jitter := rand.Float64() * backoff
	return time.Duration(jitter)
}
