package app

import (
	"context"

	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka/producer"
	"github.com/gopal-gautam/empms-backend/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays employee lifecycle events from the outbox table to Kafka
// until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeGORM(gormDB, logger)

	kafkaWriter, err := connection.NewKafkaWriter(cfg.Kafka)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, producer.Options{
		PollInterval: cfg.Kafka.PollInterval,
		BatchSize:    cfg.Kafka.BatchSize,
	})

	logger.Info("worker shutting down")
	return nil
}
