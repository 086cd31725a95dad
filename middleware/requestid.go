package middleware

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/go-mediator/mediator"
)

// Context keys for passing dispatch correlation data through context
type dispatchContextKey int

const dispatchIDKey dispatchContextKey = iota + 1

// WithDispatchID injects a dispatch correlation ID into the context
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey, id)
}

// DispatchIDFromContext extracts the dispatch correlation ID from context
func DispatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(dispatchIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// RequireDispatchID extracts the dispatch correlation ID from context,
// failing when none is present
func RequireDispatchID(ctx context.Context) (string, error) {
	id, ok := DispatchIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("dispatch ID not found in context")
	}
	return id, nil
}

// DispatchID creates middleware that assigns a fresh UUID to every dispatch
// whose context does not already carry a correlation ID. Nested dispatches
// issued by a handler keep the outer call's ID.
func DispatchID() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := DispatchIDFromContext(ctx); !ok {
			ctx = WithDispatchID(ctx, uuid.NewString())
		}
		return next(ctx, request)
	}
}
