package middleware

import (
	"strings"

	"github.com/gopal-gautam/empms-backend/internal/auth"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"
	"github.com/gopal-gautam/empms-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticate verifies the bearer token when one is present. Requests
// without a token continue anonymously and are rejected later by the guard
// on routes that require a role.
func Authenticate(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		identity, err := verifier.Verify(ctx, tokenString)
		if err != nil {
			contextutil.GetLogger(ctx, nil).Debug("token rejected", zap.Error(err))
			response.Abort(c, err)
			return
		}

		reqLogger := contextutil.GetLogger(ctx, nil).With(zap.String("subject", identity.Subject))
		ctx = contextutil.WithSubject(ctx, identity.Subject)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		auth.SetIdentity(c, identity)
		c.Next()
	}
}
