package requestid

import (
	"context"

	"github.com/google/uuid"
)

type requestKey struct{}
type commandKey struct{}

// New generates a random UUID v4 request ID.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// FromContext extracts the request ID from ctx. Returns "" if absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestKey{}).(string)
	return id
}

// WithCommandID returns a copy of ctx carrying the remote command page ID,
// so every log line produced while executing that command is correlated.
func WithCommandID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, commandKey{}, id)
}

// CommandIDFromContext extracts the command ID from ctx. Returns "" if absent.
func CommandIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(commandKey{}).(string)
	return id
}
