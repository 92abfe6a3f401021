package behaviors

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// RateLimit creates a behavior that waits for a limiter token before
// continuing. A nil limiter disables the behavior.
func RateLimit(limiter *rate.Limiter) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if limiter == nil {
			return next(ctx, request)
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
		return next(ctx, request)
	}
}
