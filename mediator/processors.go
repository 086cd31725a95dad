package mediator

import (
	"context"
	"iter"
)

// PreProcessor runs before the handler. It can observe or enrich the request
// but cannot alter control flow beyond failing, which skips the remaining
// processors and the handler.
type PreProcessor interface {
	Process(ctx context.Context, request Request) error
}

// PostProcessor runs after the handler with the request and the response the
// handler actually produced. It observes but does not replace the response;
// a failure fails the whole dispatch and skips the remaining processors.
type PostProcessor interface {
	Process(ctx context.Context, request Request, response Response) error
}

// PreProcessorFunc is a function pre-processor
type PreProcessorFunc func(ctx context.Context, request Request) error

// Process calls f(ctx, request)
func (f PreProcessorFunc) Process(ctx context.Context, request Request) error {
	return f(ctx, request)
}

// PostProcessorFunc is a function post-processor
type PostProcessorFunc func(ctx context.Context, request Request, response Response) error

// Process calls f(ctx, request, response)
func (f PostProcessorFunc) Process(ctx context.Context, request Request, response Response) error {
	return f(ctx, request, response)
}

// PreProcessorMiddleware adapts an ordered list of pre-processors into a
// single middleware. Hooks run sequentially in list order before next; the
// first failure propagates and next is never called.
func PreProcessorMiddleware(processors ...PreProcessor) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		for _, processor := range processors {
			if err := processor.Process(ctx, request); err != nil {
				return nil, err
			}
		}
		return next(ctx, request)
	}
}

// PostProcessorMiddleware adapts an ordered list of post-processors into a
// single middleware. next runs first; hooks then run sequentially in list
// order over the captured response. A hook failure discards the response from
// the caller's perspective and skips the remaining hooks.
func PostProcessorMiddleware(processors ...PostProcessor) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		response, err := next(ctx, request)
		if err != nil {
			return nil, err
		}
		for _, processor := range processors {
			if err := processor.Process(ctx, request, response); err != nil {
				return nil, err
			}
		}
		return response, nil
	}
}

// StreamPreProcessorMiddleware adapts pre-processors for the stream pipeline.
// All hooks run to completion before the first element is pulled from next's
// sequence; every element is then forwarded unchanged. The hooks themselves
// run lazily, when the caller starts iterating.
func StreamPreProcessorMiddleware(processors ...PreProcessor) StreamMiddleware {
	return func(ctx context.Context, request StreamRequest, next StreamFunc) iter.Seq2[Response, error] {
		return func(yield func(Response, error) bool) {
			for _, processor := range processors {
				if err := processor.Process(ctx, Request(request)); err != nil {
					yield(nil, err)
					return
				}
			}
			for response, err := range next(ctx, request) {
				if !yield(response, err) {
					return
				}
			}
		}
	}
}
