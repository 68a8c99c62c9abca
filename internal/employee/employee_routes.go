package employee

import (
	"github.com/gopal-gautam/empms-backend/internal/middleware"
	"github.com/gopal-gautam/empms-backend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const ResourceEmployees = "employees"

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard rbac.Guard,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	employees.Use(guard.Require(ResourceEmployees, rbac.RoleAdmin))
	{
		employees.POST("", middleware.IdempotencyIfEnabled(rdb), handler.Create)
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetByID)
		employees.DELETE("/:id", handler.Delete)
	}
}
