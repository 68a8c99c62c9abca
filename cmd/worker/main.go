package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopal-gautam/empms-backend/internal/app"
	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/shared/logger"

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
