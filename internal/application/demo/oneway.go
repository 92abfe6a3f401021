package demo

import (
	"context"
	"sync/atomic"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// OneWay is a request with no response
type OneWay struct{}

// OneWayHandler handles OneWay for its side effect only
type OneWayHandler struct {
	calls *atomic.Int64
}

// NewOneWayHandler creates a OneWayHandler counting into calls; calls may be nil
func NewOneWayHandler(calls *atomic.Int64) *OneWayHandler {
	return &OneWayHandler{calls: calls}
}

func (h *OneWayHandler) Handle(ctx context.Context, request mediator.Request) error {
	if h.calls != nil {
		h.calls.Add(1)
	}
	return nil
}
