package http

import (
	"context"

	"github.com/example/reserva-salas/internal/application"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ContextWithActor returns a derived context carrying the authenticated actor.
func ContextWithActor(ctx context.Context, actor application.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext extracts the authenticated actor from context if available.
func ActorFromContext(ctx context.Context) (application.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(application.Actor)
	return actor, ok
}
