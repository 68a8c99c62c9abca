package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopal-gautam/empms-backend/internal/app"
	"github.com/gopal-gautam/empms-backend/internal/bootstrap"
	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
	"github.com/gopal-gautam/empms-backend/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.BuildApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer a.Close()

	if err := bootstrap.StartHTTPServer(ctx, a.Router, bootstrap.ServerConfig{
		Port:         cfg.App.Port,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}
