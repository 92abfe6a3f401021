package demo

import (
	"context"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Ping is a request answered with a string
type Ping struct {
	Message string `validate:"omitempty,max=64"`
}

// PingHandler answers "Pong"
type PingHandler struct{}

// NewPingHandler creates a PingHandler
func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

func (h *PingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "Pong", nil
}

// PongHandler is a second, independent handler for Ping answering "Pong2"
type PongHandler struct{}

// NewPongHandler creates a PongHandler
func NewPongHandler() *PongHandler {
	return &PongHandler{}
}

func (h *PongHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "Pong2", nil
}

// NewSyncHandler creates a handler for Ping written as a plain typed function
func NewSyncHandler() mediator.RequestHandler {
	return mediator.HandlerOf(func(ctx context.Context, request *Ping) (string, error) {
		return "Pong", nil
	})
}
