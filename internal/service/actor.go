package service

import "context"

type actorKey struct{}

// WithActor records the operator performing the request; audit entries
// written under ctx carry this name.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFrom returns the operator stored in ctx, or "System".
func ActorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return "System"
}
