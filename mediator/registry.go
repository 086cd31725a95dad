package mediator

import (
	"context"
	"fmt"
	"iter"
	"reflect"
)

// typeOf resolves the registry key for a request type parameter. Works for
// struct and pointer request types alike.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterHandler registers a typed request handler using the type parameter
// as the registry key
// Example: mediator.RegisterHandler[*GetTaskQuery](m, handler)
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	return m.RegisterHandler(typeOf[T](), handler)
}

// RegisterVoidHandler registers a void request handler using the type
// parameter as the registry key
func RegisterVoidHandler[T Request](m Mediator, handler VoidRequestHandler) error {
	return m.RegisterVoidHandler(typeOf[T](), handler)
}

// RegisterNotificationHandler appends a notification handler using the type
// parameter as the registry key
func RegisterNotificationHandler[T Notification](m Mediator, handler NotificationHandler) error {
	return m.RegisterNotificationHandler(typeOf[T](), handler)
}

// RegisterStreamHandler registers a stream handler using the type parameter
// as the registry key
func RegisterStreamHandler[T StreamRequest](m Mediator, handler StreamHandler) error {
	return m.RegisterStreamHandler(typeOf[T](), handler)
}

// Send dispatches a request and asserts the response to TResponse, sparing
// callers the type assertion at every call site
func Send[TResponse Response](ctx context.Context, m Mediator, request Request) (TResponse, error) {
	var zero TResponse
	response, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := response.(TResponse)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T for request %T", response, request)
	}
	return typed, nil
}

// Stream dispatches a stream request and asserts each element to TResponse.
// An element of an unexpected type fails the enumeration.
func Stream[TResponse Response](ctx context.Context, m Mediator, request StreamRequest) iter.Seq2[TResponse, error] {
	return func(yield func(TResponse, error) bool) {
		var zero TResponse
		for response, err := range m.Stream(ctx, request) {
			if err != nil {
				yield(zero, err)
				return
			}
			typed, ok := response.(TResponse)
			if !ok {
				yield(zero, fmt.Errorf("unexpected stream element type %T for request %T", response, request))
				return
			}
			if !yield(typed, nil) {
				return
			}
		}
	}
}
