package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   uuid.UUID
	Kind string // guest or staff
	Role string // staff role, empty for guests
}

func (a Actor) IsStaff() bool { return a.Kind == "staff" }

func (a Actor) IsAdmin() bool { return a.Kind == "staff" && a.Role == "admin" }

func SetActorContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

func GetActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(Actor)
	return actor, ok
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
