// Package requestctx carries per-connection identifiers through request
// contexts so log lines and spans can be correlated with a watcher.
package requestctx

import "context"

type watcherIDContextKey struct{}

type requestIDContextKey struct{}

// WithWatcherID stores the connection-scoped watcher identifier in context.
func WithWatcherID(ctx context.Context, watcherID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, watcherIDContextKey{}, watcherID)
}

// WatcherIDFromContext returns the watcher identifier stored in context.
func WatcherIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(watcherIDContextKey{}).(string)
	return value
}

// WithRequestID stores the client-supplied request identifier in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the request identifier stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}
