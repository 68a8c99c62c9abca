package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the verified caller attached to a request after token
// verification. Roles may be empty; the guard decides what that means.
type Identity struct {
	Subject string   `json:"sub"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
}

const identityKey = "auth_identity"

type ctxKey struct{}

// SetIdentity stores the identity on the gin context and on the request
// context so that non-gin code can reach it too.
func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}

// IdentityFromGin returns the verified identity, if any.
func IdentityFromGin(c *gin.Context) (*Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok || val == nil {
		return nil, false
	}
	id, ok := val.(*Identity)
	return id, ok && id != nil
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
