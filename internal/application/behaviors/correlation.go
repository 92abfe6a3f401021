package behaviors

import (
	"context"
	"reflect"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// Context keys for passing dispatch data through context
type behaviorContextKey int

const (
	dispatchIDKey behaviorContextKey = iota + 2000 // Offset from logger keys
)

// WithDispatchID injects a dispatch ID into the context
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey, id)
}

// DispatchIDFromContext extracts the dispatch ID, or "" if none was set
func DispatchIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey).(string)
	return id
}

// Correlation creates a behavior that tags each dispatch with an ID.
// An ID already present in the context is kept, so nested sends share it.
func Correlation() mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if DispatchIDFromContext(ctx) == "" {
			ctx = WithDispatchID(ctx, utils.GenerateDispatchID("send", reflect.TypeOf(request).String()))
		}
		return next(ctx, request)
	}
}
