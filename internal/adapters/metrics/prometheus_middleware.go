package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// PrometheusMiddleware creates a behavior that records request execution metrics
//
// This behavior wraps the rest of the pipeline and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
//
// Request names are simplified to remove package prefixes.
// For example: "*demo.Ping" becomes "Ping"
func PrometheusMiddleware(collector *RequestMetricsCollector) mediator.Behavior {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		name := utils.ShortTypeName(reflect.TypeOf(request).String())

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(name, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
