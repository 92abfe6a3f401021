package mediator

import (
	"context"
	"reflect"
	"sync"
)

type behaviorEntry struct {
	behavior Behavior
	scope    map[reflect.Type]struct{} // nil means global
}

func (e behaviorEntry) appliesTo(payloadType reflect.Type) bool {
	if e.scope == nil {
		return true
	}
	_, ok := e.scope[payloadType]
	return ok
}

// Pipeline holds the ordered behaviors wrapped around request handlers.
//
// Global and type-scoped behaviors share one registration order: for a given
// request type the chain is every applicable behavior, first registered outermost.
type Pipeline struct {
	mu      sync.RWMutex
	entries []behaviorEntry
}

// NewPipeline creates a pipeline with the given global behaviors
func NewPipeline(behaviors ...Behavior) *Pipeline {
	p := &Pipeline{}
	for _, b := range behaviors {
		p.Use(b)
	}
	return p
}

// Use appends a behavior applied to every request
func (p *Pipeline) Use(behavior Behavior) {
	if behavior == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, behaviorEntry{behavior: behavior})
}

// UseFor appends a behavior applied only to the given payload types
func (p *Pipeline) UseFor(behavior Behavior, payloadTypes ...reflect.Type) {
	if behavior == nil || len(payloadTypes) == 0 {
		return
	}
	scope := make(map[reflect.Type]struct{}, len(payloadTypes))
	for _, t := range payloadTypes {
		scope[t] = struct{}{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, behaviorEntry{behavior: behavior, scope: scope})
}

// Len returns the number of registered behaviors
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Wrap composes the behaviors applicable to payloadType around terminal.
// Behaviors [A, B, C] yield A(B(C(terminal))).
func (p *Pipeline) Wrap(payloadType reflect.Type, terminal HandlerFunc) HandlerFunc {
	if p == nil {
		return terminal
	}

	p.mu.RLock()
	chain := make([]Behavior, 0, len(p.entries))
	for _, e := range p.entries {
		if e.appliesTo(payloadType) {
			chain = append(chain, e.behavior)
		}
	}
	p.mu.RUnlock()

	next := terminal
	for i := len(chain) - 1; i >= 0; i-- {
		next = link(chain[i], next)
	}
	return next
}

func link(behavior Behavior, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, request Request) (Response, error) {
		return behavior(ctx, request, next)
	}
}
