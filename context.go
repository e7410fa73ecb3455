package sitrep

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}

// RunIDKey is the context key under which the run id is stored.
// Pass it to logger.WithContextValue to tag every record of a run.
var RunIDKey = runIDKey{}

// WithRunID returns a context carrying a fresh run id.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDKey, uuid.NewString())
}

// RunIDFromContext returns the run id, or an empty string.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}
