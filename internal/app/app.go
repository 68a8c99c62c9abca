package app

import (
	"context"
	"fmt"

	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/middleware"
	"github.com/gopal-gautam/empms-backend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const redisConnectRetries = 5

// App owns the HTTP router and the connections it was built on.
type App struct {
	Router *gin.Engine

	db     *gorm.DB
	rdb    *redis.Client
	logger *zap.Logger
}

func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, redisConnectRetries, logger)
	if err != nil {
		closeGORM(gormDB, logger)
		return nil, err
	}
	logger.Info("redis connection established")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ContextLogger(logger))

	if err := registerModules(ctx, router, cfg, gormDB, redisClient, logger); err != nil {
		closeGORM(gormDB, logger)
		_ = redisClient.Close()
		return nil, fmt.Errorf("register modules: %w", err)
	}

	return &App{Router: router, db: gormDB, rdb: redisClient, logger: logger}, nil
}

func (a *App) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("close redis failed", zap.Error(err))
		}
	}
	closeGORM(a.db, a.logger)
}

func closeGORM(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database failed", zap.Error(err))
	}
}

func rateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimitByUser(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
}
