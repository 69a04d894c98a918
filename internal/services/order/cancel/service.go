package cancel

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
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
}

type orderCancaler interface {
	Cancel(ctx context.Context, orderUUID uuid.UUID) error
}

type orderCache interface {
	Get(key uuid.UUID) (value *models.Order, ok bool)
	Add(key uuid.UUID, value *models.Order) (evicted bool)
}

type OrderCancellationService struct {
	log   logger.Logger
	cache orderCache

	orderCancaler orderCancaler
	orderGetter   orderGetter
}

func New(
	log logger.Logger,
	cache orderCache,
	orderCancaler orderCancaler,
	orderGetter orderGetter,
) *OrderCancellationService {
	return &OrderCancellationService{
		log:           log,
		cache:         cache,
		orderCancaler: orderCancaler,
		orderGetter:   orderGetter,
	}
}

func (os *OrderCancellationService) Cancel(ctx context.Context, orderUUID uuid.UUID) (err error) {
	const op = "services.order.cancel.Cancel"

	order, exist := os.cache.Get(orderUUID)
	if !exist {
		order, err = os.orderGetter.Order(ctx, orderUUID)
		if err != nil {
			os.log.Error(op, logger.String("get order error", err.Error()))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	switch order.Status {
	case models.OrderStatusCreated, models.OrderStatusPaid:
		if err = os.orderCancaler.Cancel(ctx, orderUUID); err != nil {
			if errors.Is(err, internalErrors.ErrOrderNotFound) {
				os.log.Error(op, logger.String("order not found", orderUUID.String()))
				return fmt.Errorf("%s: %w", op, err)
			}
			os.log.Error(op, logger.String("cancel order error", err.Error()))
			return fmt.Errorf("%s: %w", op, err)
		}

		order.Status = models.OrderStatusCanceled
		_ = os.cache.Add(orderUUID, order)

		return nil
	case models.OrderStatusCanceled:
		return internalErrors.ErrOrderAlreadyCanceled
	case models.OrderStatusDelivered:
		return internalErrors.ErrOrderAlreadyDelivered
	default:
		return fmt.Errorf("%s: %w", op, internalErrors.ErrCancelOrderByStatus)
	}
}
