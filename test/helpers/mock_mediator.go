package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// MockMediator is a test double for the Mediator interface.
// Without custom functions Send fails for every request and Publish succeeds.
type MockMediator struct {
	mu          sync.Mutex
	sendFunc    func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	publishFunc func(ctx context.Context, notification mediator.Notification) error
	callLog     []string // Track which payloads were dispatched
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		callLog: []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.record("Send", request)

	m.mu.Lock()
	fn := m.sendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}
	return nil, fmt.Errorf("unsupported request type: %T", request)
}

// Publish implements the Mediator interface
func (m *MockMediator) Publish(ctx context.Context, notification mediator.Notification) error {
	m.record("Publish", notification)

	m.mu.Lock()
	fn := m.publishFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, notification)
	}
	return nil
}

func (m *MockMediator) record(op string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, fmt.Sprintf("%s:%s", op, utils.ShortTypeName(fmt.Sprintf("%T", payload))))
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// SetPublishFunc sets a custom function for Publish calls
func (m *MockMediator) SetPublishFunc(fn func(ctx context.Context, notification mediator.Notification) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFunc = fn
}

// GetCallLog returns the dispatches seen so far, e.g. "Send:Ping"
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

// ClearCallLog clears the call log
func (m *MockMediator) ClearCallLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = []string{}
}

// Ensure MockMediator implements the mediator.Mediator interface
var _ mediator.Mediator = (*MockMediator)(nil)
