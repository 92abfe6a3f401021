package demo

import (
	"fmt"
	"sync/atomic"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/resolver"
)

// Handler names as they appear in the registry
const (
	PingHandlerName   = "PingHandler"
	PongHandlerName   = "PongHandler"
	SyncHandlerName   = "SyncHandler"
	OneWayHandlerName = "OneWayHandlerWithBaseClass"
	Pong1Name         = "Pong1"
	Pong2Name         = "Pong2"
)

// Module holds the shared state of the demo handlers
type Module struct {
	Journal     *Journal
	OneWayCalls *atomic.Int64
}

// NewModule creates a demo module with fresh state
func NewModule() *Module {
	return &Module{
		Journal:     NewJournal(),
		OneWayCalls: &atomic.Int64{},
	}
}

// Register binds every demo handler. Ping ends up with three request
// handlers, so Send(Ping) is ambiguous unless a policy is configured.
func (m *Module) Register(b *resolver.Binder) error {
	if err := resolver.BindRequest[*Ping, string](b, PingHandlerName, func() mediator.RequestHandler {
		return NewPingHandler()
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", PingHandlerName, err)
	}

	if err := resolver.BindRequest[*Ping, string](b, PongHandlerName, func() mediator.RequestHandler {
		return NewPongHandler()
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", PongHandlerName, err)
	}

	if err := resolver.BindVoidRequest[*OneWay](b, OneWayHandlerName, func() mediator.VoidRequestHandler {
		return NewOneWayHandler(m.OneWayCalls)
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", OneWayHandlerName, err)
	}

	if err := resolver.BindRequest[*Ping, string](b, SyncHandlerName, NewSyncHandler); err != nil {
		return fmt.Errorf("failed to register %s: %w", SyncHandlerName, err)
	}

	if err := resolver.BindNotification[*PingNotification](b, Pong1Name, func() mediator.NotificationHandler {
		return NewPong1(m.Journal)
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", Pong1Name, err)
	}

	if err := resolver.BindNotification[*PingNotification](b, Pong2Name, func() mediator.NotificationHandler {
		return NewPong2(m.Journal)
	}); err != nil {
		return fmt.Errorf("failed to register %s: %w", Pong2Name, err)
	}

	return nil
}
