package behaviors_test

import (
	"context"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

type CreateOrder struct {
	Customer string `validate:"required"`
	Quantity int    `validate:"min=1,max=10"`
}

type logEntry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type capturingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *capturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	l.entries = append(l.entries, logEntry{level: level, message: message, metadata: copied})
}

func (l *capturingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, len(l.entries))
	for i, e := range l.entries {
		levels[i] = e.level
	}
	return levels
}

// countingHandler answers with response/err and counts invocations
type countingHandler struct {
	mu       sync.Mutex
	calls    int
	results  []error
	response mediator.Response
	lastCtx  context.Context
}

func (h *countingHandler) handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastCtx = ctx
	var err error
	if h.calls < len(h.results) {
		err = h.results[h.calls]
	}
	h.calls++
	if err != nil {
		return nil, err
	}
	return h.response, nil
}
