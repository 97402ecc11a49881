package middleware

import (
	"context"

	"github.com/sokofin/corebank/internal/core/domain"
)

// actorCtxKey is the key used to store the authenticated actor in the
// request context.
const actorCtxKey = contextKey("actor")

// GetActorFromCtx retrieves the authenticated actor from the context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}
