package app

import (
	"context"

	"github.com/gopal-gautam/empms-backend/internal/attendance"
	"github.com/gopal-gautam/empms-backend/internal/auth"
	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/employee"
	"github.com/gopal-gautam/empms-backend/internal/health"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka"
	"github.com/gopal-gautam/empms-backend/internal/middleware"
	"github.com/gopal-gautam/empms-backend/internal/provisioning"
	"github.com/gopal-gautam/empms-backend/internal/rbac"
	"github.com/gopal-gautam/empms-backend/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Identity ---
	verifier, err := auth.NewVerifier(ctx, cfg.Auth, logger)
	if err != nil {
		return err
	}
	provisioner, err := provisioning.NewProvisioner(ctx, cfg.Auth0, logger)
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	guard := rbac.NewGuard(enforcer, logger)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(employee.Deps{
		DB:          gormDB,
		Repo:        employeeRepo,
		Outbox:      outboxRepo,
		Provisioner: provisioner,
		Redis:       rdb,
		CacheTTL:    cfg.Redis.CacheTTL,
		Topic:       cfg.Kafka.LifecycleTopic,
	}, logger)
	attendanceService := attendance.NewService(attendanceRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	healthHandler, err := health.NewHandlerFromGORM(gormDB, rdb, logger)
	if err != nil {
		return err
	}

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(verifier))
	api.Use(rateLimit(cfg.RateLimit))
	{
		employee.RegisterRoutes(api, employeeHandler, guard, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, guard, rdb)
	}

	return nil
}
