// filepath: internal/logging/context.go
package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromContext returns a log entry tagged with the request id of ctx, if any.
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Log)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}
