package mediator

import (
	"fmt"
	"reflect"
)

// Capability tags what a registered handler is able to do with its payload
type Capability int

const (
	// CapabilityRequest produces a response R from a request P
	CapabilityRequest Capability = iota + 1
	// CapabilityRequestNoResult handles a request P for side effects only
	CapabilityRequestNoResult
	// CapabilityNotification reacts to a notification N
	CapabilityNotification
)

// String returns the capability name used in logs and errors
func (c Capability) String() string {
	switch c {
	case CapabilityRequest:
		return "RequestHandler"
	case CapabilityRequestNoResult:
		return "RequestHandlerNoResult"
	case CapabilityNotification:
		return "NotificationHandler"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// IsRequest reports whether the capability answers Send
func (c Capability) IsRequest() bool {
	return c == CapabilityRequest || c == CapabilityRequestNoResult
}

// HandlerIdentity names one registered handler.
//
// Identities are plain comparable values: the resolver uses them as keys and
// the publisher reports failures against them.
type HandlerIdentity struct {
	Name         string
	PayloadType  reflect.Type
	ResponseType reflect.Type // nil unless Capability is CapabilityRequest
	Capability   Capability
}

// String formats the identity as Name(Capability<Payload[, Response]>)
func (id HandlerIdentity) String() string {
	if id.ResponseType != nil {
		return fmt.Sprintf("%s(%s<%s, %s>)", id.Name, id.Capability, id.PayloadType, id.ResponseType)
	}
	return fmt.Sprintf("%s(%s<%s>)", id.Name, id.Capability, id.PayloadType)
}

// validate checks the identity against the payload type it is registered under
func (id HandlerIdentity) validate(payloadType reflect.Type) error {
	switch {
	case payloadType == nil:
		return fmt.Errorf("payload type cannot be nil")
	case id.Name == "":
		return fmt.Errorf("handler name cannot be empty")
	case id.PayloadType != payloadType:
		return fmt.Errorf("identity payload type %v does not match %s", id.PayloadType, payloadType)
	}

	switch id.Capability {
	case CapabilityRequest:
		if id.ResponseType == nil {
			return fmt.Errorf("%s requires a response type", id.Capability)
		}
	case CapabilityRequestNoResult, CapabilityNotification:
		if id.ResponseType != nil {
			return fmt.Errorf("%s cannot declare a response type", id.Capability)
		}
	default:
		return fmt.Errorf("unknown capability %s", id.Capability)
	}
	return nil
}

// RequestIdentity builds the identity of a handler producing R from P
func RequestIdentity[P any, R any](name string) HandlerIdentity {
	return HandlerIdentity{
		Name:         name,
		PayloadType:  typeOf[P](),
		ResponseType: typeOf[R](),
		Capability:   CapabilityRequest,
	}
}

// VoidRequestIdentity builds the identity of a no-result handler for P
func VoidRequestIdentity[P any](name string) HandlerIdentity {
	return HandlerIdentity{
		Name:        name,
		PayloadType: typeOf[P](),
		Capability:  CapabilityRequestNoResult,
	}
}

// NotificationIdentity builds the identity of a handler reacting to N
func NotificationIdentity[N any](name string) HandlerIdentity {
	return HandlerIdentity{
		Name:        name,
		PayloadType: typeOf[N](),
		Capability:  CapabilityNotification,
	}
}
