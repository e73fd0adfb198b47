package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextActorKey ctxKey = "actor"

// Actor identifies the authenticated user performing a request. The
// activity log stamps entries with the actor name, falling back to
// "System" when no one is authenticated.
type Actor struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	if ctx == nil {
		return nil, false
	}
	actor, ok := ctx.Value(contextActorKey).(*Actor)
	return actor, ok && actor != nil
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

// ActorName returns the display name for the activity log.
func ActorName(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok && actor.Name != "" {
		return actor.Name
	}
	return "System"
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
