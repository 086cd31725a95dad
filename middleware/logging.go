package middleware

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/go-mediator/mediator"
)

// Logging creates middleware that logs every dispatch with its request name,
// duration, and outcome. The dispatch ID is included when the context carries
// one (see DispatchID).
func Logging(logger *zap.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()

		response, err := next(ctx, request)

		fields := []zap.Field{
			zap.String("request", RequestName(request)),
			zap.Duration("duration", time.Since(start)),
		}
		if id, ok := DispatchIDFromContext(ctx); ok {
			fields = append(fields, zap.String("dispatch_id", id))
		}

		if err != nil {
			logger.Error("dispatch failed", append(fields, zap.Error(err))...)
			return response, err
		}
		logger.Debug("dispatch completed", fields...)
		return response, nil
	}
}

// StreamLogging creates stream middleware that logs each stream dispatch once
// the enumeration finishes, including the number of elements forwarded.
func StreamLogging(logger *zap.Logger) mediator.StreamMiddleware {
	return func(ctx context.Context, request mediator.StreamRequest, next mediator.StreamFunc) iter.Seq2[mediator.Response, error] {
		return func(yield func(mediator.Response, error) bool) {
			start := time.Now()
			elements := 0
			var streamErr error

			for response, err := range next(ctx, request) {
				if err != nil {
					streamErr = err
					yield(response, err)
					break
				}
				elements++
				if !yield(response, nil) {
					break
				}
			}

			fields := []zap.Field{
				zap.String("request", RequestName(request)),
				zap.Int("elements", elements),
				zap.Duration("duration", time.Since(start)),
			}
			if streamErr != nil {
				logger.Error("stream dispatch failed", append(fields, zap.Error(streamErr))...)
				return
			}
			logger.Debug("stream dispatch completed", fields...)
		}
	}
}
