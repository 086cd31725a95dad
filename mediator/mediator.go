// Package mediator provides a single in-process dispatch point that routes
// typed request/response, fire-and-forget, notification, and streaming
// messages to registered handlers through an ordered middleware pipeline.
//
// Handlers are registered against the concrete request type; middleware and
// pre/post processors are configured once at construction and wrap every
// dispatch. The mediator holds no mutable per-call state and is safe for
// concurrent use.
package mediator

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// Mediator dispatches requests, notifications, and stream requests to their
// registered handlers
type Mediator interface {
	// Send dispatches a request to its single registered handler and returns
	// the handler's response. Void requests return Unit.
	Send(ctx context.Context, request Request) (Response, error)

	// Publish delivers a notification to every handler registered for its
	// type. Zero registered handlers is a successful no-op.
	Publish(ctx context.Context, notification Notification) error

	// Stream dispatches a stream request and returns the lazy response
	// sequence. The sequence fails mid-enumeration on cancellation or
	// handler error; it never truncates silently.
	Stream(ctx context.Context, request StreamRequest) iter.Seq2[Response, error]

	// RegisterHandler registers a typed request handler for a request type
	RegisterHandler(requestType reflect.Type, handler RequestHandler) error

	// RegisterVoidHandler registers a void request handler for a request type
	RegisterVoidHandler(requestType reflect.Type, handler VoidRequestHandler) error

	// RegisterNotificationHandler appends a notification handler for a
	// notification type. Handlers are invoked in registration order.
	RegisterNotificationHandler(notificationType reflect.Type, handler NotificationHandler) error

	// RegisterStreamHandler registers a stream handler for a request type
	RegisterStreamHandler(requestType reflect.Type, handler StreamHandler) error
}

// Option configures a mediator at construction time
type Option func(*mediator)

// WithMiddleware appends request middleware to the pipeline. Order is
// execution order: the first middleware given is the outermost wrapper.
func WithMiddleware(middleware ...Middleware) Option {
	return func(m *mediator) {
		m.middleware = append(m.middleware, middleware...)
	}
}

// WithStreamMiddleware appends stream middleware to the stream pipeline
func WithStreamMiddleware(middleware ...StreamMiddleware) Option {
	return func(m *mediator) {
		m.streamMiddleware = append(m.streamMiddleware, middleware...)
	}
}

// WithPreProcessors folds pre-processors into the request pipeline as a
// single middleware stage. Processors share the ordering space with plain
// middleware: the stage sits wherever this option appears among the others.
func WithPreProcessors(processors ...PreProcessor) Option {
	return func(m *mediator) {
		m.middleware = append(m.middleware, PreProcessorMiddleware(processors...))
	}
}

// WithPostProcessors folds post-processors into the request pipeline as a
// single middleware stage, subject to the same ordering coupling as
// WithPreProcessors.
func WithPostProcessors(processors ...PostProcessor) Option {
	return func(m *mediator) {
		m.middleware = append(m.middleware, PostProcessorMiddleware(processors...))
	}
}

// WithStreamPreProcessors folds pre-processors into the stream pipeline
func WithStreamPreProcessors(processors ...PreProcessor) Option {
	return func(m *mediator) {
		m.streamMiddleware = append(m.streamMiddleware, StreamPreProcessorMiddleware(processors...))
	}
}

// WithPublishStrategy selects the notification delivery strategy.
// The default is PublishConcurrent.
func WithPublishStrategy(strategy PublishStrategy) Option {
	return func(m *mediator) {
		m.publishStrategy = strategy
	}
}

// mediator is the concrete implementation
type mediator struct {
	mu                   sync.RWMutex
	requestHandlers      map[reflect.Type]RequestHandler
	notificationHandlers map[reflect.Type][]NotificationHandler
	streamHandlers       map[reflect.Type]StreamHandler

	// Pipelines are fixed at construction; only the registries above are
	// guarded by the mutex.
	middleware       []Middleware
	streamMiddleware []StreamMiddleware
	publishStrategy  PublishStrategy
}

// NewMediator creates a new mediator instance
func NewMediator(opts ...Option) Mediator {
	m := &mediator{
		requestHandlers:      make(map[reflect.Type]RequestHandler),
		notificationHandlers: make(map[reflect.Type][]NotificationHandler),
		streamHandlers:       make(map[reflect.Type]StreamHandler),
		publishStrategy:      PublishConcurrent,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterHandler registers a handler for a specific request type
func (m *mediator) RegisterHandler(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.requestHandlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.requestHandlers[requestType] = handler
	return nil
}

// RegisterVoidHandler registers a void handler, adapted internally to return
// the Unit sentinel so the typed pipeline machinery serves both shapes
func (m *mediator) RegisterVoidHandler(requestType reflect.Type, handler VoidRequestHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	return m.RegisterHandler(requestType, HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
		if err := handler.Handle(ctx, request); err != nil {
			return nil, err
		}
		return Unit{}, nil
	}))
}

// RegisterNotificationHandler appends a handler for a notification type
func (m *mediator) RegisterNotificationHandler(notificationType reflect.Type, handler NotificationHandler) error {
	if notificationType == nil {
		return fmt.Errorf("notification type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.notificationHandlers[notificationType] = append(m.notificationHandlers[notificationType], handler)
	return nil
}

// RegisterStreamHandler registers a stream handler for a request type
func (m *mediator) RegisterStreamHandler(requestType reflect.Type, handler StreamHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.streamHandlers[requestType]; exists {
		return fmt.Errorf("stream handler already registered for type %s", requestType)
	}
	m.streamHandlers[requestType] = handler
	return nil
}

// Send dispatches a request through the middleware pipeline to its handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestType := reflect.TypeOf(request)
	m.mu.RLock()
	handler, ok := m.requestHandlers[requestType]
	m.mu.RUnlock()
	if !ok {
		return nil, &HandlerNotFoundError{Kind: "request", MessageType: requestType}
	}

	pipeline := newPipeline(m.middleware, handler.Handle)
	return pipeline(ctx, request)
}

// Publish delivers a notification to all handlers registered for its type
func (m *mediator) Publish(ctx context.Context, notification Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	notificationType := reflect.TypeOf(notification)
	m.mu.RLock()
	registered := m.notificationHandlers[notificationType]
	handlers := make([]NotificationHandler, len(registered))
	copy(handlers, registered)
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	if m.publishStrategy == PublishSequential {
		return publishSequential(ctx, notification, handlers)
	}
	return publishConcurrent(ctx, notification, handlers)
}

// Stream dispatches a stream request through the stream middleware pipeline
func (m *mediator) Stream(ctx context.Context, request StreamRequest) iter.Seq2[Response, error] {
	if request == nil {
		return errSeq(fmt.Errorf("request cannot be nil"))
	}
	if err := ctx.Err(); err != nil {
		return errSeq(err)
	}

	requestType := reflect.TypeOf(request)
	m.mu.RLock()
	handler, ok := m.streamHandlers[requestType]
	m.mu.RUnlock()
	if !ok {
		return errSeq(&HandlerNotFoundError{Kind: "stream request", MessageType: requestType})
	}

	pipeline := newStreamPipeline(m.streamMiddleware, handler.Handle)
	return cancelableSeq(ctx, pipeline(ctx, request))
}
