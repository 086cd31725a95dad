package mediator

import (
	"context"
	"iter"
)

// Request represents a command or query dispatched to exactly one handler
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// Notification represents an event broadcast to zero or more handlers
type Notification interface{}

// StreamRequest represents a query whose handler produces its responses
// incrementally as a lazy sequence
type StreamRequest interface{}

// Unit is the response produced by void requests. It carries no data and
// exists so the void pipeline can reuse the typed request machinery.
type Unit struct{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// VoidRequestHandler handles a request that completes without a response
// value. The mediator adapts it internally to a RequestHandler returning Unit.
type VoidRequestHandler interface {
	Handle(ctx context.Context, request Request) error
}

// NotificationHandler handles a specific notification type. Any number of
// handlers may be registered for the same type; each is invoked independently
// and none is aware of the others.
type NotificationHandler interface {
	Handle(ctx context.Context, notification Notification) error
}

// StreamHandler handles a stream request. The returned sequence is lazy,
// forward-only, and must not be iterated more than once.
type StreamHandler interface {
	Handle(ctx context.Context, request StreamRequest) iter.Seq2[Response, error]
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f(ctx, request)
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// VoidHandlerFunc is a function that handles a void request
type VoidHandlerFunc func(ctx context.Context, request Request) error

// Handle calls f(ctx, request)
func (f VoidHandlerFunc) Handle(ctx context.Context, request Request) error {
	return f(ctx, request)
}

// NotificationHandlerFunc is a function that handles a notification
type NotificationHandlerFunc func(ctx context.Context, notification Notification) error

// Handle calls f(ctx, notification)
func (f NotificationHandlerFunc) Handle(ctx context.Context, notification Notification) error {
	return f(ctx, notification)
}

// StreamFunc is a function that handles a stream request
type StreamFunc func(ctx context.Context, request StreamRequest) iter.Seq2[Response, error]

// Handle calls f(ctx, request)
func (f StreamFunc) Handle(ctx context.Context, request StreamRequest) iter.Seq2[Response, error] {
	return f(ctx, request)
}

// Middleware is a function that wraps handler execution with cross-cutting concerns
// Examples: authentication, logging, telemetry, circuit breakers, rate limits.
// The first middleware in the pipeline is the outermost wrapper; not calling
// next short-circuits everything downstream, including the handler.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// StreamMiddleware wraps stream handler execution. It receives the lazy
// sequence produced downstream and may consume, filter, or forward elements
// one at a time. It must not drain the sequence eagerly unless buffering is
// its purpose.
type StreamMiddleware func(ctx context.Context, request StreamRequest, next StreamFunc) iter.Seq2[Response, error]
