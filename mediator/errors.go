package mediator

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrHandlerNotFound reports a dispatch for which no handler registration
// exists. Callers can use errors.Is to distinguish a missing registration
// from a handler that ran and failed.
var ErrHandlerNotFound = errors.New("handler not found")

// HandlerNotFoundError carries the message type that had no registration
type HandlerNotFoundError struct {
	Kind        string // "request" or "stream request"
	MessageType reflect.Type
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no %s handler registered for type %s", e.Kind, e.MessageType)
}

func (e *HandlerNotFoundError) Unwrap() error {
	return ErrHandlerNotFound
}
