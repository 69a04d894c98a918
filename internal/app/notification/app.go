package notification

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/internal/dedup"
	checkoutHandler "github.com/tavakkoli/shop_events_system/internal/delivery/kafka/order_checkout"
	paymentHandler "github.com/tavakkoli/shop_events_system/internal/delivery/kafka/payment_processed"
	userHandler "github.com/tavakkoli/shop_events_system/internal/delivery/kafka/user_registered"
	"github.com/tavakkoli/shop_events_system/internal/lib/templates"
	emailSender "github.com/tavakkoli/shop_events_system/internal/senders/email"
	smsSender "github.com/tavakkoli/shop_events_system/internal/senders/sms"
	"github.com/tavakkoli/shop_events_system/internal/services/notification/dispatch"
	"github.com/tavakkoli/shop_events_system/pkg/brokers/kafka/consumer"
	"github.com/tavakkoli/shop_events_system/pkg/databases/redis"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type App struct {
	log logger.Logger

	consumerGroup *consumer.Group
	redisClient   *goredis.Client
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	const op = "app.notification.NewApp"

	var (
		redisClient *goredis.Client
		deduper     dispatch.Deduper
	)

	// An empty redis address disables deduplication: duplicate broker
	// deliveries re-send notifications.
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}

		redisClient = client
		deduper = dedup.NewStore(log, client, cfg.Redis.DedupTTL)
	} else {
		log.Warn(op, logger.String("dedup", "disabled, no redis address configured"))
	}

	dispatchSvc := dispatch.New(
		log,
		templates.NewRegistry(log),
		emailSender.NewSender(log, cfg.SMTP),
		smsSender.NewSender(log, cfg.SMS),
		deduper,
	)

	handlers := map[string]consumer.MessageHandler{
		cfg.Kafka.CheckoutTopic: checkoutHandler.NewHandler(log, dispatchSvc).Handle,
		cfg.Kafka.PaymentTopic:  paymentHandler.NewHandler(log, dispatchSvc).Handle,
		cfg.Kafka.UserTopic:     userHandler.NewHandler(log, dispatchSvc).Handle,
	}

	group, err := consumer.NewGroup(log, cfg.Kafka.BrokerList, cfg.Kafka.NotificationsGroup, handlers)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &App{
		log:           log,
		consumerGroup: group,
		redisClient:   redisClient,
	}, nil
}

// Run blocks consuming until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.consumerGroup.Run(ctx)
}

func (a *App) Stop() error {
	if err := a.consumerGroup.Close(); err != nil {
		return fmt.Errorf("close consumer group: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}

	return nil
}
