package attendance

import (
	"github.com/gopal-gautam/empms-backend/internal/middleware"
	"github.com/gopal-gautam/empms-backend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	ResourceClockInOuts    = "clock-in-outs"
	ResourceOwnClockInOuts = "me.clock-in-outs"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard rbac.Guard,
	rdb *redis.Client,
) {
	admin := r.Group("/clock-in-outs")
	admin.Use(guard.Require(ResourceClockInOuts, rbac.RoleAdmin))
	{
		admin.POST("", middleware.IdempotencyIfEnabled(rdb), handler.Create)
		admin.GET("", handler.GetAll)
		admin.GET("/:id", handler.GetByID)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}

	self := r.Group("/me/clock-in-outs")
	self.Use(guard.Require(ResourceOwnClockInOuts, rbac.RoleEmployee))
	{
		self.POST("", middleware.IdempotencyIfEnabled(rdb), handler.ClockInSelf)
		self.GET("", handler.GetAllSelf)
		self.PATCH("/:id", handler.UpdateSelf)
	}
}
