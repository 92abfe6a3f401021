package behaviors

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// Logging creates a behavior that logs every request through the context logger.
//
// Successful requests log at DEBUG, cancellations at WARNING and failures at ERROR.
// The dispatch ID set by Correlation is included when present.
func Logging() mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := logging.LoggerFromContext(ctx)
		name := utils.ShortTypeName(reflect.TypeOf(request).String())

		metadata := map[string]interface{}{
			"request": name,
		}
		if id := DispatchIDFromContext(ctx); id != "" {
			metadata["dispatch_id"] = id
		}

		logger.Log(logging.LevelDebug, fmt.Sprintf("[Mediator] Handling %s", name), metadata)

		start := time.Now()
		response, err := next(ctx, request)
		metadata["duration_ms"] = time.Since(start).Milliseconds()

		switch {
		case err == nil:
			logger.Log(logging.LevelDebug, fmt.Sprintf("[Mediator] Handled %s", name), metadata)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			metadata["error"] = err.Error()
			logger.Log(logging.LevelWarning, fmt.Sprintf("[Mediator] %s cancelled: %v", name, err), metadata)
		default:
			metadata["error"] = err.Error()
			logger.Log(logging.LevelError, fmt.Sprintf("[Mediator] %s failed: %v", name, err), metadata)
		}

		return response, err
	}
}
