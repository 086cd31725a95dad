package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/go-mediator/mediator"
)

// RateLimit creates middleware that blocks each dispatch until the limiter
// grants a token. The wait honors context cancellation, so a canceled caller
// never reaches the handler.
func RateLimit(limiter *rate.Limiter) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("dispatch rate limit: %w", err)
		}
		return next(ctx, request)
	}
}
