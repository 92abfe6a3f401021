package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors for the mediator package. The typed errors below match
// them through errors.Is.
var (
	// ErrNilRequest is returned when Send or Publish is called with a nil payload.
	ErrNilRequest = errors.New("request cannot be nil")

	// ErrNoHandler is matched by *NoHandlerError.
	ErrNoHandler = errors.New("no handler registered")

	// ErrAmbiguousHandler is matched by *AmbiguousHandlerError.
	ErrAmbiguousHandler = errors.New("ambiguous handler registration")

	// ErrResolution is matched by *ResolutionError.
	ErrResolution = errors.New("handler resolution failed")

	// ErrInvalidRegistration is matched by *RegistrationError.
	ErrInvalidRegistration = errors.New("invalid handler registration")
)

// NoHandlerError is returned by Send when no request handler is registered
type NoHandlerError struct {
	PayloadType reflect.Type
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler registered for type %s", e.PayloadType)
}

func (e *NoHandlerError) Is(target error) bool {
	return target == ErrNoHandler
}

// AmbiguousHandlerError is returned by Send when several request handlers
// qualify and no ambiguity policy selects one
type AmbiguousHandlerError struct {
	PayloadType    reflect.Type
	CandidateCount int
	Candidates     []HandlerIdentity
}

func (e *AmbiguousHandlerError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Name
	}
	return fmt.Sprintf("%d handlers registered for type %s: [%s]",
		e.CandidateCount, e.PayloadType, strings.Join(names, ", "))
}

func (e *AmbiguousHandlerError) Is(target error) bool {
	return target == ErrAmbiguousHandler
}

// ResolutionError is returned when the resolver cannot materialize a handler
type ResolutionError struct {
	Identity HandlerIdentity
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve handler %s: %v", e.Identity, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// RegistrationError is returned when an identity fails the registration check
type RegistrationError struct {
	PayloadType reflect.Type
	Identity    HandlerIdentity
	Reason      string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("cannot register %s for type %v: %s", e.Identity.Name, e.PayloadType, e.Reason)
}

func (e *RegistrationError) Is(target error) bool {
	return target == ErrInvalidRegistration
}

// PanicError carries a panic recovered from a handler or behavior
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// ResponseTypeError is returned by the typed Send helper when the handler's
// response cannot be converted to the requested type
type ResponseTypeError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *ResponseTypeError) Error() string {
	return fmt.Sprintf("response type mismatch: expected %s, got %v", e.Expected, e.Actual)
}

// HandlerFailure pairs a notification handler with the error it returned
type HandlerFailure struct {
	Identity HandlerIdentity
	Err      error
}

// AggregateNotificationError carries every failure of a single Publish call,
// in handler registration order
type AggregateNotificationError struct {
	PayloadType reflect.Type
	Failures    []HandlerFailure
}

func (e *AggregateNotificationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Identity.Name, f.Err)
	}
	return fmt.Sprintf("%d notification handler(s) failed for type %s: %s",
		len(e.Failures), e.PayloadType, strings.Join(parts, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *AggregateNotificationError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// FailureFor returns the error recorded for the named handler, if any
func (e *AggregateNotificationError) FailureFor(name string) (error, bool) {
	for _, f := range e.Failures {
		if f.Identity.Name == name {
			return f.Err, true
		}
	}
	return nil, false
}
