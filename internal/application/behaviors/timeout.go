package behaviors

import (
	"context"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Timeout creates a behavior that bounds the rest of the chain to d.
// The handler must respect context cancellation for this to be effective.
func Timeout(d time.Duration) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if d <= 0 {
			return next(ctx, request)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx, request)
	}
}
