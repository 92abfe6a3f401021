package behaviors

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// FieldViolation describes one failed validation rule
type FieldViolation struct {
	Field string
	Tag   string
	Value interface{}
}

// ValidationError is returned when a request fails struct validation.
// The handler is never invoked.
type ValidationError struct {
	Request    string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", v.Field, v.Tag, v.Value)
	}
	return fmt.Sprintf("%s validation failed:\n  %s", e.Request, strings.Join(messages, "\n  "))
}

// Validation creates a behavior that validates struct requests with
// go-playground/validator tags and short-circuits on failure.
// Requests that are not structs (or pointers to structs) pass through.
func Validation(v *validator.Validate) mediator.Behavior {
	if v == nil {
		v = validator.New()
	}
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if !isStruct(request) {
			return next(ctx, request)
		}

		if err := v.StructCtx(ctx, request); err != nil {
			var validationErrs validator.ValidationErrors
			if !errors.As(err, &validationErrs) {
				return nil, err
			}

			verr := &ValidationError{Request: reflect.TypeOf(request).String()}
			for _, fe := range validationErrs {
				verr.Violations = append(verr.Violations, FieldViolation{
					Field: fe.Field(),
					Tag:   fe.Tag(),
					Value: fe.Value(),
				})
			}
			return nil, verr
		}

		return next(ctx, request)
	}
}

func isStruct(request mediator.Request) bool {
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		if reflect.ValueOf(request).IsNil() {
			return false
		}
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
