package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	httpapp "github.com/tavakkoli/shop_events_system/internal/app/http"
	"github.com/tavakkoli/shop_events_system/internal/cache"
	"github.com/tavakkoli/shop_events_system/internal/config"
	orderRouter "github.com/tavakkoli/shop_events_system/internal/delivery/http/order"
	cancelHandler "github.com/tavakkoli/shop_events_system/internal/delivery/http/order/cancel"
	createHandler "github.com/tavakkoli/shop_events_system/internal/delivery/http/order/create"
	getHandler "github.com/tavakkoli/shop_events_system/internal/delivery/http/order/get"
	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	orderRepository "github.com/tavakkoli/shop_events_system/internal/repository/order"
	outboxRepository "github.com/tavakkoli/shop_events_system/internal/repository/outbox"
	cancelService "github.com/tavakkoli/shop_events_system/internal/services/order/cancel"
	createService "github.com/tavakkoli/shop_events_system/internal/services/order/create"
	getService "github.com/tavakkoli/shop_events_system/internal/services/order/get"
	"github.com/tavakkoli/shop_events_system/pkg/databases/postgres"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const (
	cacheSize = 256
	cacheTTL  = 10 * time.Minute
)

type App struct {
	log logger.Logger

	HTTPServer *httpapp.App
	db         *postgres.PgDB
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.NewPostgresDB(ctx, log, PostgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	outboxRepo := outboxRepository.New(log, db.GetDB())
	orderRepo := orderRepository.NewRepository(log, db.GetDB(), outboxRepo)

	lru := expirable.NewLRU[uuid.UUID, *models.Order](cacheSize, nil, cacheTTL)
	orderCache := cache.NewOrderCache(lru, log)

	creationSvc := createService.New(log, orderCache, orderRepo)
	retrievalSvc := getService.New(log, orderCache, orderRepo)
	cancellationSvc := cancelService.New(log, orderCache, orderRepo, orderRepo)

	router := orderRouter.InitRoutes(
		createHandler.NewHandler(log, creationSvc),
		getHandler.NewHandler(log, retrievalSvc),
		cancelHandler.NewHandler(log, cancellationSvc),
	)

	return &App{
		log:        log,
		HTTPServer: httpapp.NewApp(log, router, cfg.HTTP.OrderPort),
		db:         db,
	}, nil
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return fmt.Errorf("stop http server: %w", err)
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}

	return nil
}

func PostgresDSN(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		psqlCfg.Host, psqlCfg.Port, psqlCfg.User, psqlCfg.DbName, psqlCfg.Pwd, psqlCfg.SslMode)
}
