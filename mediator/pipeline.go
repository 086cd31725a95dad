package mediator

import (
	"context"
	"iter"
)

// newPipeline composes an ordered middleware list around a terminal handler
// invocation. The first middleware in the list is the outermost wrapper; the
// last runs immediately before the terminal operation.
//
// The composed continuation checks cancellation on entry to every step, so a
// context canceled after the chain has started still aborts before the next
// stage runs. Each middleware receives the continuation itself as next and
// decides whether, when, and how many times to invoke it.
//
// The cursor is call-local: Send builds a fresh pipeline per dispatch, so
// independent calls never share chain state.
func newPipeline(middleware []Middleware, terminal HandlerFunc) HandlerFunc {
	cursor := 0
	var step HandlerFunc
	step = func(ctx context.Context, request Request) (Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cursor < len(middleware) {
			mw := middleware[cursor]
			cursor++
			return mw(ctx, request, step)
		}
		return terminal(ctx, request)
	}
	return step
}

// newStreamPipeline is the sequence-flavored twin of newPipeline. Middleware
// wrap the lazy sequence instead of a single value; composition itself pulls
// nothing, elements flow only when the caller iterates the final sequence.
func newStreamPipeline(middleware []StreamMiddleware, terminal StreamFunc) StreamFunc {
	cursor := 0
	var step StreamFunc
	step = func(ctx context.Context, request StreamRequest) iter.Seq2[Response, error] {
		if err := ctx.Err(); err != nil {
			return errSeq(err)
		}
		if cursor < len(middleware) {
			mw := middleware[cursor]
			cursor++
			return mw(ctx, request, step)
		}
		return terminal(ctx, request)
	}
	return step
}

// errSeq returns a sequence that fails immediately with err
func errSeq(err error) iter.Seq2[Response, error] {
	return func(yield func(Response, error) bool) {
		yield(nil, err)
	}
}

// cancelableSeq wraps a sequence so that a context canceled between elements
// ends the enumeration with the cancellation error instead of silently
// truncating it.
func cancelableSeq(ctx context.Context, seq iter.Seq2[Response, error]) iter.Seq2[Response, error] {
	return func(yield func(Response, error) bool) {
		for response, err := range seq {
			if cerr := ctx.Err(); cerr != nil && err == nil {
				yield(nil, cerr)
				return
			}
			if !yield(response, err) {
				return
			}
			if err != nil {
				// An error terminates the stream.
				return
			}
		}
	}
}
