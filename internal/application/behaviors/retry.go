package behaviors

import (
	"context"
	"math/rand"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// RetryPolicy configures the Retry behavior
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first
	MaxAttempts int

	// BackoffBase is the delay before the second attempt; it doubles each time
	BackoffBase time.Duration

	// Retryable classifies errors; nil means no error is retried
	Retryable func(err error) bool
}

// Retry creates a behavior that re-runs the rest of the chain on retryable
// errors with exponential backoff and jitter. Retried handlers must be
// idempotent; the mediator itself never retries.
func Retry(policy RetryPolicy) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		attempts := policy.MaxAttempts
		if attempts < 1 {
			attempts = 1
		}

		var lastErr error
		for attempt := 0; attempt < attempts; attempt++ {
			if attempt > 0 {
				backoff := policy.BackoffBase * time.Duration(1<<uint(attempt-1))
				if backoff > 0 {
					backoff += time.Duration(rand.Int63n(int64(backoff)/2 + 1))
				}

				timer := time.NewTimer(backoff)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil, ctx.Err()
				case <-timer.C:
				}
			}

			response, err := next(ctx, request)
			if err == nil {
				return response, nil
			}
			lastErr = err

			if policy.Retryable == nil || !policy.Retryable(err) {
				return nil, err
			}
		}

		return nil, lastErr
	}
}
