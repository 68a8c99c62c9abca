package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gopal-gautam/empms-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db     Pinger
	rdb    redis.Cmdable
	logger *zap.Logger
}

// NewHandler builds the probe handler. Either dependency may be nil, in
// which case it is reported as skipped.
func NewHandler(db Pinger, rdb redis.Cmdable, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{db: db, rdb: rdb, logger: l}
}

// NewHandlerFromGORM pings the pool underneath gormDB.
func NewHandlerFromGORM(gormDB *gorm.DB, rdb *redis.Client, logger ...*zap.Logger) (*Handler, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	var cmd redis.Cmdable
	if rdb != nil {
		cmd = rdb
	}
	return NewHandler(sqlDB, cmd, logger...), nil
}

func (h *Handler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := gin.H{"database": "skipped", "redis": "skipped"}
	ready := true

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("database not ready", zap.Error(err))
			checks["database"] = "down"
			ready = false
		} else {
			checks["database"] = "up"
		}
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.logger.Warn("redis not ready", zap.Error(err))
			checks["redis"] = "down"
			ready = false
		} else {
			checks["redis"] = "up"
		}
	}

	if !ready {
		response.Error(c, http.StatusServiceUnavailable, "NOT_READY", "service not ready", checks)
		return
	}
	response.Success(c, http.StatusOK, checks)
}

func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/healthz", h.Live)
	r.GET("/readyz", h.Ready)
}
