package rbac

import (
	"github.com/gopal-gautam/empms-backend/internal/auth"
	"github.com/gopal-gautam/empms-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

func (g *guard) middleware(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := auth.IdentityFromGin(c)
		if err := g.Authorize(identity, resource); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}
