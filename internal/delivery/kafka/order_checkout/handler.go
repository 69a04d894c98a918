package order_checkout

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type checkoutDispatcher interface {
	OrderCheckout(ctx context.Context, event *models.OrderCheckoutEvent) models.DispatchOutcome
}

type Handler struct {
	log        logger.Logger
	dispatcher checkoutDispatcher
}

func NewHandler(log logger.Logger, dispatcher checkoutDispatcher) *Handler {
	return &Handler{
		log:        log,
		dispatcher: dispatcher,
	}
}

// Handle decodes one checkout event and dispatches notifications. It always
// returns nil: a malformed message cannot be fixed by redelivery, and a
// failed notification must never block the offset commit of the business
// event.
func (h *Handler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	const op = "delivery.kafka.order_checkout.Handle"

	var event models.OrderCheckoutEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.log.ErrorContext(ctx, op,
			logger.String("decode error", err.Error()),
			logger.String("topic", msg.Topic),
		)
		return nil
	}

	outcome := h.dispatcher.OrderCheckout(ctx, &event)
	if outcome.Failed() {
		h.log.WarnContext(ctx, op,
			logger.String("event_uuid", event.UUID()),
			logger.String("order_uuid", event.OrderUUID.String()),
			logger.String("result", "one or more channels failed"),
		)
	}

	return nil
}
