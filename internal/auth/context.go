package auth

import (
	"context"

	"complianceai/internal/models"
)

type ctxKey string

const userKey ctxKey = "authUser"

// Identity is the resolved actor attached to the request context after
// the token check succeeds.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

func (id Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

func FromContext(ctx context.Context) Identity {
	if v, ok := ctx.Value(userKey).(Identity); ok {
		return v
	}
	return Identity{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).UserID
}

func IdentityOf(u *models.User) Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}
