package main

import (
	"context"
	"fmt"

	orderapp "github.com/tavakkoli/shop_events_system/internal/app/order"
	"github.com/tavakkoli/shop_events_system/internal/config"
	outboxRepository "github.com/tavakkoli/shop_events_system/internal/repository/outbox"
	sendService "github.com/tavakkoli/shop_events_system/internal/services/outbox/send"
	outboxProducer "github.com/tavakkoli/shop_events_system/pkg/brokers/kafka/outbox_producer"
	"github.com/tavakkoli/shop_events_system/pkg/databases/postgres"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// One-shot outbox drain, meant to be scheduled externally (cron or a k8s
// CronJob).
func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, log, orderapp.PostgresDSN(&cfg.Postgres))
	if err != nil {
		panic(fmt.Sprintf("failed connect to db: %v", err))
	}
	defer db.Close()

	producer, err := outboxProducer.NewProducer(cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create kafka producer: %v", err))
	}
	defer producer.Close()

	outboxRepo := outboxRepository.New(log, db.GetDB())

	sender := sendService.New(log, cfg.Kafka, producer, outboxRepo, outboxRepo)

	if err = sender.Send(ctx); err != nil {
		panic(fmt.Sprintf("failed to drain outbox: %v", err))
	}

	log.Info("outbox drained")
}
