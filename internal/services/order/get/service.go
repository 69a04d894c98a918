package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type orderGetter interface {
	OrdersByUUIDs(ctx context.Context, UUIDs []uuid.UUID) (map[uuid.UUID]models.Order, error)
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
}

type orderCache interface {
	Get(key uuid.UUID) (value *models.Order, ok bool)
	Add(key uuid.UUID, value *models.Order) (evicted bool)
}

type OrderRetrievalService struct {
	log   logger.Logger
	cache orderCache

	orderGetter orderGetter
}

func New(log logger.Logger, cache orderCache, orderGetter orderGetter) *OrderRetrievalService {
	return &OrderRetrievalService{
		log:         log,
		cache:       cache,
		orderGetter: orderGetter,
	}
}

func (os *OrderRetrievalService) OrdersByUUIDs(ctx context.Context, UUIDs []uuid.UUID) ([]models.Order, error) {
	const op = "services.order.get.OrdersByUUIDs"

	result := make([]models.Order, 0, len(UUIDs))
	notInCache := make([]uuid.UUID, 0, len(UUIDs))

	for _, orderUUID := range UUIDs {
		if value, ok := os.cache.Get(orderUUID); ok && value != nil {
			result = append(result, *value)
			continue
		}
		notInCache = append(notInCache, orderUUID)
	}

	os.log.InfoContext(ctx, op,
		logger.Int("items in cache", len(result)),
		logger.Int("items not in cache", len(notInCache)),
	)

	if len(notInCache) == 0 {
		return result, nil
	}

	ordersMap, err := os.orderGetter.OrdersByUUIDs(ctx, notInCache)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			return result, nil
		}

		os.log.Error(op, logger.String("get orders error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for orderUUID, order := range ordersMap {
		order := order
		result = append(result, order)
		_ = os.cache.Add(orderUUID, &order)
	}

	return result, nil
}

func (os *OrderRetrievalService) OrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "services.order.get.OrderByUUID"

	if order, ok := os.cache.Get(orderUUID); ok && order != nil {
		os.log.DebugContext(ctx, op, logger.String("cache hit", orderUUID.String()))
		return order, nil
	}

	return os.orderGetter.Order(ctx, orderUUID)
}
