package create

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (uuid.UUID, error)
}

type orderCache interface {
	Add(key uuid.UUID, value *models.Order) (evicted bool)
}

type OrderCreationService struct {
	log   logger.Logger
	cache orderCache

	orderCreator orderCreator
}

func New(log logger.Logger, cache orderCache, orderCreator orderCreator) *OrderCreationService {
	return &OrderCreationService{
		log:          log,
		cache:        cache,
		orderCreator: orderCreator,
	}
}

func (os *OrderCreationService) Create(ctx context.Context, order *models.Order) (string, error) {
	const op = "services.order.create.Create"

	order.Status = models.OrderStatusCreated
	order.CreatedAt = time.Now()

	var total uint64
	for _, item := range order.Items {
		total += uint64(item.Quantity) * item.UnitPrice
	}
	order.TotalPrice = total

	orderUUID, err := os.orderCreator.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	order.OrderUUID = orderUUID
	for i := range order.Items {
		order.Items[i].OrderUUID = orderUUID
	}

	_ = os.cache.Add(orderUUID, order)

	os.log.InfoContext(ctx, op,
		logger.String("order_uuid", orderUUID.String()),
		logger.Uint64("total_price", total),
	)

	return orderUUID.String(), nil
}
