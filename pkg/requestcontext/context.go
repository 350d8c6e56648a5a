// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; handlers read them and pass
// the caller identity to services as an explicit argument. Keeping this
// package free of net/http lets services and tests use it directly.
package requestcontext

import (
	"context"
	"time"

	id "persona/pkg/domain"
)

type (
	callerKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// GetCaller retrieves the resolved caller from the context. The second
// return is false when no identity middleware ran.
func GetCaller(ctx context.Context) (id.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(id.Caller)
	return c, ok
}

// WithCaller injects a resolved caller into the context.
func WithCaller(ctx context.Context, c id.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// RequestID retrieves the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// Now retrieves the request-scoped time, falling back to time.Now for
// non-HTTP contexts such as workers and tests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time. Tests use this to make timestamps
// deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
