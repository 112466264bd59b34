// Package access carries the authenticated caller through the request
// context and decides who may mutate an owned resource.
package access

import (
	"context"

	"github.com/Spok95/geosites/internal/domain/users"
)

// Actor is the caller identity resolved from the bearer token.
type Actor struct {
	UserID int64
	Email  string
	Role   users.Role
}

func (a Actor) IsAdmin() bool { return a.Role == users.RoleAdmin }

// CanMutate is the one ownership rule used by sites and submissions:
// admins may change anything, everybody else only what they own.
func CanMutate(a Actor, ownerID int64) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == ownerID)
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
