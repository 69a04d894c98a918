package payment

import (
	"context"
	"fmt"

	httpapp "github.com/tavakkoli/shop_events_system/internal/app/http"
	orderapp "github.com/tavakkoli/shop_events_system/internal/app/order"
	"github.com/tavakkoli/shop_events_system/internal/config"
	paymentRouter "github.com/tavakkoli/shop_events_system/internal/delivery/http/payment"
	getHandler "github.com/tavakkoli/shop_events_system/internal/delivery/http/payment/get"
	processHandler "github.com/tavakkoli/shop_events_system/internal/delivery/http/payment/process"
	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/internal/gateway"
	paymentRepository "github.com/tavakkoli/shop_events_system/internal/repository/payment"
	processService "github.com/tavakkoli/shop_events_system/internal/services/payment/process"
	kafkaProducer "github.com/tavakkoli/shop_events_system/pkg/brokers/kafka/producer"
	"github.com/tavakkoli/shop_events_system/pkg/databases/postgres"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const eventsChanCapacity = 100

type App struct {
	log logger.Logger

	HTTPServer *httpapp.App

	db         *postgres.PgDB
	producer   *kafkaProducer.Producer
	eventsChan chan models.Event
	done       chan struct{}
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.NewPostgresDB(ctx, log, orderapp.PostgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	eventsChan := make(chan models.Event, eventsChanCapacity)
	done := make(chan struct{})

	producer, err := kafkaProducer.NewProducer(ctx, log, cfg.Kafka.PaymentTopic, eventsChan, done, cfg.Kafka.BrokerList)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	go producer.ProduceEvents(ctx)

	paymentRepo := paymentRepository.NewRepository(log, db.GetDB())
	sandbox := gateway.NewSandbox(gateway.SandboxMode(cfg.Payment.GatewayMode))

	processingSvc := processService.New(log, paymentRepo, sandbox, eventsChan)

	router := paymentRouter.InitRoutes(
		processHandler.NewHandler(log, processingSvc),
		getHandler.NewHandler(log, processingSvc),
	)

	return &App{
		log:        log,
		HTTPServer: httpapp.NewApp(log, router, cfg.HTTP.PaymentPort),
		db:         db,
		producer:   producer,
		eventsChan: eventsChan,
		done:       done,
	}, nil
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return fmt.Errorf("stop http server: %w", err)
	}

	// No more Process calls after the server is down, so the events channel
	// can be closed and the producer drained.
	close(a.eventsChan)

	if err := a.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}

	return nil
}
